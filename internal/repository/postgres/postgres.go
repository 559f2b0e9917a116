package postgres

import (
	"database/sql"

	"carlink-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.DistributionRepository
	repository.DriverAssignmentRepository
	repository.RefreshTokenRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                         db,
		UserRepository:             NewUserRepository(db),
		CarRepository:              NewCarRepository(db),
		RentalRepository:           NewRentalRepository(db),
		PaymentRepository:          NewPaymentRepository(db),
		DistributionRepository:     NewDistributionRepository(db),
		DriverAssignmentRepository: NewDriverAssignmentRepository(db),
		RefreshTokenRepository:     NewRefreshTokenRepository(db),
	}
}
