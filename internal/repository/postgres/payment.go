package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, rental_id, amount, method, type, status, transaction_ref, refund_of_id,
	commission_rate, platform_fee, owner_revenue, driver_revenue, notes, paid_on, created_on, updated_on`

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.RentalID, &p.Amount, &p.Method, &p.Type, &p.Status, &p.TransactionRef,
		&p.RefundOfID, &p.CommissionRate, &p.PlatformFee, &p.OwnerRevenue, &p.DriverRevenue,
		&p.Notes, &p.PaidOn, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (rental_id, amount, method, type, status, transaction_ref, refund_of_id,
	          commission_rate, platform_fee, owner_revenue, driver_revenue, notes, paid_on, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.RentalID, p.Amount, p.Method, p.Type, p.Status, p.TransactionRef,
		p.RefundOfID, p.CommissionRate, p.PlatformFee, p.OwnerRevenue, p.DriverRevenue, p.Notes, p.PaidOn, now, now).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// UpdateStatus only succeeds while the payment is still in the expected
// state, so two racing transitions cannot both win.
func (r *paymentRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.PaymentStatus, paidOn *time.Time) error {
	query := `UPDATE payments SET status=$1, paid_on=COALESCE($2, paid_on), updated_on=$3 WHERE id=$4 AND status=$5`
	res, err := r.db.ExecContext(ctx, query, to, paidOn, time.Now(), id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// AmountPaid counts only completed positive payments: refunds are excluded by
// sign so they are not subtracted twice.
func (r *paymentRepository) AmountPaid(ctx context.Context, rentalID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE rental_id = $1 AND status = 'COMPLETED' AND amount > 0`
	err := r.db.QueryRowContext(ctx, query, rentalID).Scan(&total)
	return total, err
}

func (r *paymentRepository) RefundedTotal(ctx context.Context, paymentID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(-amount), 0) FROM payments WHERE refund_of_id = $1 AND status = 'COMPLETED' AND amount < 0`
	err := r.db.QueryRowContext(ctx, query, paymentID).Scan(&total)
	return total, err
}

func (r *paymentRepository) OwnerRevenueBetween(ctx context.Context, ownerID int32, from, to time.Time) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(p.owner_revenue), 0)
	          FROM payments p
	          JOIN rentals rt ON rt.id = p.rental_id
	          JOIN cars c ON c.id = rt.car_id
	          WHERE c.owner_id = $1 AND p.status = 'COMPLETED' AND p.amount > 0
	            AND p.paid_on >= $2 AND p.paid_on < $3`
	err := r.db.QueryRowContext(ctx, query, ownerID, from, to).Scan(&total)
	return total, err
}
