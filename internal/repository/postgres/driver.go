package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/repository"
)

type driverAssignmentRepository struct {
	db *sql.DB
}

func NewDriverAssignmentRepository(db *sql.DB) repository.DriverAssignmentRepository {
	return &driverAssignmentRepository{db: db}
}

const assignmentColumns = `id, owner_id, driver_id, daily_fee, is_active, created_on, updated_on`

func scanAssignment(row interface{ Scan(...any) error }) (*domain.DriverAssignment, error) {
	a := &domain.DriverAssignment{}
	err := row.Scan(&a.ID, &a.OwnerID, &a.DriverID, &a.DailyFee, &a.IsActive, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *driverAssignmentRepository) Create(ctx context.Context, a *domain.DriverAssignment) error {
	query := `INSERT INTO driver_assignments (owner_id, driver_id, daily_fee, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, a.OwnerID, a.DriverID, a.DailyFee, a.IsActive, now, now).Scan(&a.ID)
}

func (r *driverAssignmentRepository) GetByID(ctx context.Context, id int32) (*domain.DriverAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM driver_assignments WHERE id = $1`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

func (r *driverAssignmentRepository) GetByOwnerAndDriver(ctx context.Context, ownerID, driverID int32) (*domain.DriverAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM driver_assignments WHERE owner_id = $1 AND driver_id = $2 AND is_active`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, ownerID, driverID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

func (r *driverAssignmentRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.DriverAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM driver_assignments WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.DriverAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

func (r *driverAssignmentRepository) Update(ctx context.Context, a *domain.DriverAssignment) error {
	query := `UPDATE driver_assignments SET daily_fee=$1, is_active=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, a.DailyFee, a.IsActive, time.Now(), a.ID)
	return err
}
