package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, car_id, renter_id, driver_id, start_date, end_date, pickup_at, return_at,
	total_price, driver_fee, delivery_fee, delivery_km, late_fee, damage_fee,
	requires_driver, driver_accepted, status, notes, version, created_on, updated_on`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.CarID, &rt.RenterID, &rt.DriverID, &rt.StartDate, &rt.EndDate,
		&rt.PickupAt, &rt.ReturnAt, &rt.TotalPrice, &rt.DriverFee, &rt.DeliveryFee, &rt.DeliveryKm,
		&rt.LateFee, &rt.DamageFee, &rt.RequiresDriver, &rt.DriverAccepted, &rt.Status, &rt.Notes,
		&rt.Version, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (car_id, renter_id, driver_id, start_date, end_date, total_price,
	          driver_fee, delivery_fee, delivery_km, requires_driver, driver_accepted, status, notes, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1, $14, $15) RETURNING id, version`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, rt.CarID, rt.RenterID, rt.DriverID, rt.StartDate, rt.EndDate,
		rt.TotalPrice, rt.DriverFee, rt.DeliveryFee, rt.DeliveryKm, rt.RequiresDriver, rt.DriverAccepted,
		rt.Status, rt.Notes, now, now).Scan(&rt.ID, &rt.Version)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rt, err
}

// Update is a conditional write on (id, version). The version the caller read
// must still be current or the update affects zero rows and the caller gets
// domain.ErrVersionConflict.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET driver_id=$1, pickup_at=$2, return_at=$3, late_fee=$4, damage_fee=$5,
	          driver_accepted=$6, status=$7, notes=$8, version=version+1, updated_on=$9
	          WHERE id=$10 AND version=$11`
	res, err := r.db.ExecContext(ctx, query, rt.DriverID, rt.PickupAt, rt.ReturnAt, rt.LateFee, rt.DamageFee,
		rt.DriverAccepted, rt.Status, rt.Notes, time.Now(), rt.ID, rt.Version)
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
	rt.Version++
	return nil
}

func (r *rentalRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, `renter_id = $1`, renterID, status, page, pageSize)
}

func (r *rentalRepository) ListByCarOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, `car_id IN (SELECT id FROM cars WHERE owner_id = $1)`, ownerID, status, page, pageSize)
}

func (r *rentalRepository) ListByDriver(ctx context.Context, driverID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, `driver_id = $1`, driverID, status, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, where string, id int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	base := `FROM rentals WHERE ` + where

	args := []interface{}{id}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + rentalColumns + ` ` + base + fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}
