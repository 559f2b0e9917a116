package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const minimalYAML = `
server:
  host: "localhost"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "carlink"
  password: "pw"
  database: "carlink_test"
  ssl_mode: "disable"
jwt:
  secret: "test-secret-0123456789abcdefghijklmn"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	assert.NoError(t, err)

	assert.Equal(t, 0.15, cfg.Billing.CommissionRate)
	assert.Equal(t, 0.30, cfg.Billing.DepositPercent)
	assert.Equal(t, 0.10, cfg.Billing.LateFeeDailyPercent)
	assert.Equal(t, 24, cfg.Billing.CancelLeadTimeHours)
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 60*24*7, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.MarkOverdueRentals)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocode.BaseURL)
	assert.Equal(t, 5, cfg.Geocode.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("BILLING_COMMISSION_RATE", "0.20")
	t.Setenv("JWT_SECRET", "env-secret-0123456789abcdefghijklmnop")

	cfg, err := Load(writeConfig(t, minimalYAML))
	assert.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 0.20, cfg.Billing.CommissionRate)
	assert.Equal(t, "env-secret-0123456789abcdefghijklmnop", cfg.JWT.Secret)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("Short JWT secret rejected", func(t *testing.T) {
		bad := `
server:
  port: 8080
database:
  host: "localhost"
  user: "u"
  database: "d"
jwt:
  secret: "short"
`
		_, err := Load(writeConfig(t, bad))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("Commission rate out of range rejected", func(t *testing.T) {
		bad := minimalYAML + `
billing:
  commission_rate: 1.5
`
		_, err := Load(writeConfig(t, bad))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "commission rate")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load("/does/not/exist.yaml")
		assert.Error(t, err)
	})
}

func TestGetDatabaseConnectionString(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	assert.NoError(t, err)
	assert.Equal(t, "postgres://carlink:pw@localhost:5432/carlink_test?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
}
