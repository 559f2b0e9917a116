package jobs

import (
	"context"
	"time"

	"carlink-backend/internal/logger"
)

// MarkOverdueRentals flips ACTIVE rentals whose end date has passed to
// OVERDUE. The version bump keeps concurrent API writes honest.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rentals
			SET status = 'OVERDUE',
			    version = version + 1,
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND end_date < $1
			RETURNING id, renter_id, car_id, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id, renterID, carID int32
				endDate             time.Time
			)
			if err := rows.Scan(&id, &renterID, &carID, &endDate); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}
			count++
			logger.Debug("Marked rental as overdue",
				"rental_id", id,
				"renter_id", renterID,
				"car_id", carID,
				"end_date", endDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", count)
	})
}

// SendOverdueReminders emails the renter of every rental still in OVERDUE.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, u.email, c.name
			FROM rentals r
			JOIN users u ON u.id = r.renter_id
			JOIN cars c ON c.id = r.car_id
			WHERE r.status = 'OVERDUE'
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to load overdue rentals for reminders", "error", err)
			return
		}
		defer rows.Close()

		sent := 0
		for rows.Next() {
			var (
				rentalID int32
				email    string
				carName  string
			)
			if err := rows.Scan(&rentalID, &email, &carName); err != nil {
				logger.Error("Failed to scan overdue reminder row", "error", err)
				continue
			}
			if err := jr.services.Email.SendOverdueReminder(ctx, email, carName); err != nil {
				logger.Warn("Failed to send overdue reminder", "rental_id", rentalID, "error", err)
				continue
			}
			sent++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue reminders", "error", err)
			return
		}

		logger.Info("Sent overdue reminders", "count", sent)
	})
}
