package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, owner_id, name, brand, plate, price_per_day, price_per_hour, latitude, longitude,
	max_delivery_distance_km, price_per_km_delivery, status, created_on, updated_on`

func scanCar(row interface{ Scan(...any) error }) (*domain.Car, error) {
	c := &domain.Car{}
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Brand, &c.Plate, &c.PricePerDay, &c.PricePerHour,
		&c.Latitude, &c.Longitude, &c.MaxDeliveryDistanceKm, &c.PricePerKmDelivery, &c.Status, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (owner_id, name, brand, plate, price_per_day, price_per_hour, latitude, longitude,
	          max_delivery_distance_km, price_per_km_delivery, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.OwnerID, c.Name, c.Brand, c.Plate, c.PricePerDay, c.PricePerHour,
		c.Latitude, c.Longitude, c.MaxDeliveryDistanceKm, c.PricePerKmDelivery, c.Status, now, now).Scan(&c.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET name=$1, brand=$2, plate=$3, price_per_day=$4, price_per_hour=$5, latitude=$6,
	          longitude=$7, max_delivery_distance_km=$8, price_per_km_delivery=$9, status=$10, updated_on=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Brand, c.Plate, c.PricePerDay, c.PricePerHour,
		c.Latitude, c.Longitude, c.MaxDeliveryDistanceKm, c.PricePerKmDelivery, c.Status, time.Now(), c.ID)
	return err
}

func (r *carRepository) UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	query := `UPDATE cars SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *carRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Car, int32, error) {
	return r.list(ctx, `owner_id = $1`, ownerID, page, pageSize)
}

func (r *carRepository) ListByStatus(ctx context.Context, status domain.CarStatus, page, pageSize int32) ([]domain.Car, int32, error) {
	return r.list(ctx, `status = $1`, status, page, pageSize)
}

func (r *carRepository) list(ctx context.Context, where string, arg any, page, pageSize int32) ([]domain.Car, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM cars WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, arg).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + carColumns + ` FROM cars WHERE ` + where + ` ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, arg, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		cars = append(cars, *c)
	}
	return cars, count, rows.Err()
}
