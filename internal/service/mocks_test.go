package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carlink-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockCarRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Car, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}
func (m *MockCarRepo) ListByStatus(ctx context.Context, status domain.CarStatus, page, pageSize int32) ([]domain.Car, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByCarOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByDriver(ctx context.Context, driverID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, driverID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.PaymentStatus, paidOn *time.Time) error {
	args := m.Called(ctx, id, from, to, paidOn)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) AmountPaid(ctx context.Context, rentalID int32) (int64, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) RefundedTotal(ctx context.Context, paymentID int32) (int64, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) OwnerRevenueBetween(ctx context.Context, ownerID int32, from, to time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockDistributionRepo
type MockDistributionRepo struct {
	mock.Mock
}

func (m *MockDistributionRepo) CreateBatch(ctx context.Context, dists []domain.PaymentDistribution) error {
	args := m.Called(ctx, dists)
	return args.Error(0)
}
func (m *MockDistributionRepo) GetByID(ctx context.Context, id int32) (*domain.PaymentDistribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDistribution), args.Error(1)
}
func (m *MockDistributionRepo) ListByPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).([]domain.PaymentDistribution), args.Error(1)
}
func (m *MockDistributionRepo) ExistsForPayment(ctx context.Context, paymentID int32) (bool, error) {
	args := m.Called(ctx, paymentID)
	return args.Bool(0), args.Error(1)
}
func (m *MockDistributionRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.DistributionStatus, transactionRef, errorMessage string) error {
	args := m.Called(ctx, id, from, to, transactionRef, errorMessage)
	return args.Error(0)
}

// MockDriverAssignmentRepo
type MockDriverAssignmentRepo struct {
	mock.Mock
}

func (m *MockDriverAssignmentRepo) Create(ctx context.Context, a *domain.DriverAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockDriverAssignmentRepo) GetByID(ctx context.Context, id int32) (*domain.DriverAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverAssignment), args.Error(1)
}
func (m *MockDriverAssignmentRepo) GetByOwnerAndDriver(ctx context.Context, ownerID, driverID int32) (*domain.DriverAssignment, error) {
	args := m.Called(ctx, ownerID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverAssignment), args.Error(1)
}
func (m *MockDriverAssignmentRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.DriverAssignment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.DriverAssignment), args.Error(1)
}
func (m *MockDriverAssignmentRepo) Update(ctx context.Context, a *domain.DriverAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockRefreshTokenRepo
type MockRefreshTokenRepo struct {
	mock.Mock
}

func (m *MockRefreshTokenRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockRefreshTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}
func (m *MockRefreshTokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}
func (m *MockRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockRefreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingCreated(ctx context.Context, ownerEmail, renterName, carName string) error {
	args := m.Called(ctx, ownerEmail, renterName, carName)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalConfirmed(ctx context.Context, renterEmail, carName string) error {
	args := m.Called(ctx, renterEmail, carName)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCancelled(ctx context.Context, ownerEmail, renterName, carName, reason string) error {
	args := m.Called(ctx, ownerEmail, renterName, carName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCompleted(ctx context.Context, email, carName string, totalPrice int64) error {
	args := m.Called(ctx, email, carName, totalPrice)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, renterEmail, carName string) error {
	args := m.Called(ctx, renterEmail, carName)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceived(ctx context.Context, ownerEmail, carName string, amount int64) error {
	args := m.Called(ctx, ownerEmail, carName, amount)
	return args.Error(0)
}

// MockDistributionService
type MockDistributionService struct {
	mock.Mock
}

func (m *MockDistributionService) CreateForPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).([]domain.PaymentDistribution), args.Error(1)
}
func (m *MockDistributionService) MarkCompleted(ctx context.Context, distributionID int32, transactionRef string) error {
	args := m.Called(ctx, distributionID, transactionRef)
	return args.Error(0)
}
func (m *MockDistributionService) MarkFailed(ctx context.Context, distributionID int32, errorMessage string) error {
	args := m.Called(ctx, distributionID, errorMessage)
	return args.Error(0)
}
func (m *MockDistributionService) ListByPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).([]domain.PaymentDistribution), args.Error(1)
}
