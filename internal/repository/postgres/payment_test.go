package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carlink-backend/internal/domain"
)

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p := &domain.Payment{
			RentalID:       7,
			Amount:         3_000_000,
			Method:         domain.PaymentMethodBankTransfer,
			Type:           domain.PaymentTypeDeposit,
			Status:         domain.PaymentStatusPending,
			TransactionRef: "ref-1",
			CommissionRate: 0.15,
			PlatformFee:    450_000,
			OwnerRevenue:   2_550_000,
		}

		mock.ExpectQuery("INSERT INTO payments").
			WithArgs(p.RentalID, p.Amount, p.Method, p.Type, p.Status, p.TransactionRef, p.RefundOfID,
				p.CommissionRate, p.PlatformFee, p.OwnerRevenue, p.DriverRevenue, p.Notes, p.PaidOn,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), p.ID)
	})
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Guarded transition succeeds", func(t *testing.T) {
		now := time.Now()
		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(domain.PaymentStatusCompleted, &now, sqlmock.AnyArg(), int32(11), domain.PaymentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 11, domain.PaymentStatusPending, domain.PaymentStatusCompleted, &now)
		assert.NoError(t, err)
	})

	t.Run("Guard miss yields a conflict", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(domain.PaymentStatusFailed, (*time.Time)(nil), sqlmock.AnyArg(), int32(11), domain.PaymentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 11, domain.PaymentStatusPending, domain.PaymentStatusFailed, nil)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}

func TestPaymentRepository_Sums(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("AmountPaid sums completed positive payments", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(3_000_000))

		total, err := repo.AmountPaid(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(3_000_000), total)
	})

	t.Run("RefundedTotal sums completed refunds", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(-amount\\), 0\\) FROM payments").
			WithArgs(int32(11)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1_000_000))

		total, err := repo.RefundedTotal(ctx, 11)
		assert.NoError(t, err)
		assert.Equal(t, int64(1_000_000), total)
	})

	t.Run("OwnerRevenueBetween joins through rentals and cars", func(t *testing.T) {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(p.owner_revenue\\), 0\\)").
			WithArgs(int32(10), from, to).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(8_500_000))

		total, err := repo.OwnerRevenueBetween(ctx, 10, from, to)
		assert.NoError(t, err)
		assert.Equal(t, int64(8_500_000), total)
	})
}
