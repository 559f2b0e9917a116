package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_Reverse(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolves the display name", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"display_name": "District 1, Ho Chi Minh City, Vietnam"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 2*time.Second)
		loc := c.Reverse(ctx, 10.762622, 106.660172)
		assert.Equal(t, "District 1, Ho Chi Minh City, Vietnam", loc.DisplayName)
		assert.Equal(t, 10.762622, loc.Latitude)
	})

	t.Run("Falls back to coordinates on server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 2*time.Second)
		loc := c.Reverse(ctx, 10.762622, 106.660172)
		assert.Equal(t, "10.762622, 106.660172", loc.DisplayName)
	})

	t.Run("Falls back when the server is unreachable", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
		loc := c.Reverse(ctx, 21.028511, 105.804817)
		assert.Equal(t, "21.028511, 105.804817", loc.DisplayName)
	})

	t.Run("Falls back on malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 2*time.Second)
		loc := c.Reverse(ctx, 10.0, 106.0)
		assert.Equal(t, "10.000000, 106.000000", loc.DisplayName)
	})
}
