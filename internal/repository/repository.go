package repository

import (
	"context"
	"time"

	"carlink-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Car, int32, error)
	ListByStatus(ctx context.Context, status domain.CarStatus, page, pageSize int32) ([]domain.Car, int32, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// Update writes the mutable rental fields conditionally on the version
	// the caller read. Returns domain.ErrVersionConflict when a concurrent
	// transition got there first.
	Update(ctx context.Context, rental *domain.Rental) error
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByCarOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByDriver(ctx context.Context, driverID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	// UpdateStatus transitions a payment conditionally on its current
	// status. Returns domain.ErrVersionConflict when the guard misses.
	UpdateStatus(ctx context.Context, id int32, from, to domain.PaymentStatus, paidOn *time.Time) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
	// AmountPaid is the sum of COMPLETED positive payments for a rental.
	AmountPaid(ctx context.Context, rentalID int32) (int64, error)
	// RefundedTotal is the absolute sum of COMPLETED refunds against a payment.
	RefundedTotal(ctx context.Context, paymentID int32) (int64, error)
	// OwnerRevenueBetween sums COMPLETED positive payments over the owner's
	// cars in [from, to).
	OwnerRevenueBetween(ctx context.Context, ownerID int32, from, to time.Time) (int64, error)
}

type DistributionRepository interface {
	// CreateBatch inserts one row per recipient for a payment.
	CreateBatch(ctx context.Context, dists []domain.PaymentDistribution) error
	GetByID(ctx context.Context, id int32) (*domain.PaymentDistribution, error)
	ListByPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error)
	ExistsForPayment(ctx context.Context, paymentID int32) (bool, error)
	// UpdateStatus transitions a distribution conditionally on its current
	// status, recording a transaction reference or an error message.
	UpdateStatus(ctx context.Context, id int32, from, to domain.DistributionStatus, transactionRef, errorMessage string) error
}

type DriverAssignmentRepository interface {
	Create(ctx context.Context, a *domain.DriverAssignment) error
	GetByID(ctx context.Context, id int32) (*domain.DriverAssignment, error)
	GetByOwnerAndDriver(ctx context.Context, ownerID, driverID int32) (*domain.DriverAssignment, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.DriverAssignment, error)
	Update(ctx context.Context, a *domain.DriverAssignment) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID int32) error
	DeleteExpired(ctx context.Context) (int64, error)
}
