package jobs

import (
	"context"

	"carlink-backend/internal/logger"
)

// PurgeRefreshTokens deletes refresh tokens that are expired or revoked.
// Validation only consults live rows, so this is purely housekeeping.
func (jr *JobRunner) PurgeRefreshTokens() {
	jr.runWithRecovery("PurgeRefreshTokens", func() {
		ctx := context.Background()

		query := `
			DELETE FROM refresh_tokens
			WHERE expires_at < NOW()
			   OR revoked_at IS NOT NULL
		`

		res, err := jr.db.ExecContext(ctx, query)
		if err != nil {
			logger.Error("Failed to purge refresh tokens", "error", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			logger.Error("Failed to count purged refresh tokens", "error", err)
			return
		}
		logger.Info("Purged refresh tokens", "count", n)
	})
}
