package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/repository"
)

type distributionRepository struct {
	db *sql.DB
}

func NewDistributionRepository(db *sql.DB) repository.DistributionRepository {
	return &distributionRepository{db: db}
}

const distributionColumns = `id, payment_id, recipient, recipient_user_id, amount, status,
	transaction_ref, error_message, created_on, updated_on`

func scanDistribution(row interface{ Scan(...any) error }) (*domain.PaymentDistribution, error) {
	d := &domain.PaymentDistribution{}
	err := row.Scan(&d.ID, &d.PaymentID, &d.Recipient, &d.RecipientUserID, &d.Amount, &d.Status,
		&d.TransactionRef, &d.ErrorMessage, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CreateBatch inserts the full recipient set for a payment in one transaction
// so a partial set never persists.
func (r *distributionRepository) CreateBatch(ctx context.Context, dists []domain.PaymentDistribution) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO payment_distributions (payment_id, recipient, recipient_user_id, amount, status,
	          transaction_ref, error_message, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	for i := range dists {
		d := &dists[i]
		if err := tx.QueryRowContext(ctx, query, d.PaymentID, d.Recipient, d.RecipientUserID, d.Amount,
			d.Status, d.TransactionRef, d.ErrorMessage, now, now).Scan(&d.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *distributionRepository) GetByID(ctx context.Context, id int32) (*domain.PaymentDistribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM payment_distributions WHERE id = $1`
	d, err := scanDistribution(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return d, err
}

func (r *distributionRepository) ListByPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM payment_distributions WHERE payment_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dists []domain.PaymentDistribution
	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, err
		}
		dists = append(dists, *d)
	}
	return dists, rows.Err()
}

func (r *distributionRepository) ExistsForPayment(ctx context.Context, paymentID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM payment_distributions WHERE payment_id = $1)`
	err := r.db.QueryRowContext(ctx, query, paymentID).Scan(&exists)
	return exists, err
}

func (r *distributionRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.DistributionStatus, transactionRef, errorMessage string) error {
	query := `UPDATE payment_distributions
	          SET status=$1, transaction_ref=COALESCE(NULLIF($2, ''), transaction_ref), error_message=$3, updated_on=$4
	          WHERE id=$5 AND status=$6`
	res, err := r.db.ExecContext(ctx, query, to, transactionRef, errorMessage, time.Now(), id, from)
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
