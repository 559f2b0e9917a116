package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carlink-backend/internal/config"
	"carlink-backend/internal/domain"
)

type paymentFixture struct {
	paymentRepo *MockPaymentRepo
	rentalRepo  *MockRentalRepo
	carRepo     *MockCarRepo
	userRepo    *MockUserRepo
	distSvc     *MockDistributionService
	emailSvc    *MockEmailService
	svc         PaymentService
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		paymentRepo: new(MockPaymentRepo),
		rentalRepo:  new(MockRentalRepo),
		carRepo:     new(MockCarRepo),
		userRepo:    new(MockUserRepo),
		distSvc:     new(MockDistributionService),
		emailSvc:    new(MockEmailService),
	}
	billing := config.BillingConfig{CommissionRate: 0.15, DepositPercent: 0.30}
	f.svc = NewPaymentService(f.paymentRepo, f.rentalRepo, f.carRepo, f.userRepo, f.distSvc, f.emailSvc, billing)
	return f
}

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()

	rental := &domain.Rental{ID: 1, CarID: 2, RenterID: 3, TotalPrice: 10_000_000}

	t.Run("Success snapshots the revenue split", func(t *testing.T) {
		f := newPaymentFixture()
		f.rentalRepo.On("GetByID", ctx, int32(1)).Return(rental, nil)
		f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		p, err := f.svc.Create(ctx, 1, 3_000_000, domain.PaymentMethodBankTransfer, domain.PaymentTypeDeposit, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, p.Status)
		assert.Equal(t, int64(450_000), p.PlatformFee) // 15% of 3M
		assert.Equal(t, int64(2_550_000), p.OwnerRevenue)
		assert.Equal(t, int64(0), p.DriverRevenue)
		assert.Equal(t, p.Amount, p.PlatformFee+p.OwnerRevenue+p.DriverRevenue)
		assert.NotEmpty(t, p.TransactionRef)
	})

	t.Run("Driver share comes from the rental fee", func(t *testing.T) {
		f := newPaymentFixture()
		driverID := int32(7)
		withDriver := &domain.Rental{ID: 1, CarID: 2, RenterID: 3, TotalPrice: 10_000_000,
			RequiresDriver: true, DriverID: &driverID, DriverFee: 1_000_000}
		f.rentalRepo.On("GetByID", ctx, int32(1)).Return(withDriver, nil)
		f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		p, err := f.svc.Create(ctx, 1, 10_000_000, domain.PaymentMethodEWallet, domain.PaymentTypeFullPayment, "")
		assert.NoError(t, err)
		assert.Equal(t, int64(1_500_000), p.PlatformFee)
		assert.Equal(t, int64(1_000_000), p.DriverRevenue)
		assert.Equal(t, int64(7_500_000), p.OwnerRevenue)
	})

	t.Run("Refund type rejected", func(t *testing.T) {
		f := newPaymentFixture()
		_, err := f.svc.Create(ctx, 1, 1_000_000, domain.PaymentMethodCash, domain.PaymentTypeRefund, "")
		assert.Error(t, err)
		assert.True(t, domain.IsInvalidOperation(err))
	})

	t.Run("Non-positive amount rejected", func(t *testing.T) {
		f := newPaymentFixture()
		_, err := f.svc.Create(ctx, 1, 0, domain.PaymentMethodCash, domain.PaymentTypeDeposit, "")
		assert.Error(t, err)
		_, err = f.svc.Create(ctx, 1, -500, domain.PaymentMethodCash, domain.PaymentTypeDeposit, "")
		assert.Error(t, err)
	})
}

func TestPaymentService_Transitions(t *testing.T) {
	ctx := context.Background()

	pending := func() *domain.Payment {
		return &domain.Payment{ID: 9, RentalID: 1, Amount: 3_000_000, Status: domain.PaymentStatusPending}
	}

	t.Run("Complete stamps paid_on", func(t *testing.T) {
		f := newPaymentFixture()
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(pending(), nil)
		f.paymentRepo.On("UpdateStatus", ctx, int32(9), domain.PaymentStatusPending, domain.PaymentStatusCompleted, mock.AnythingOfType("*time.Time")).Return(nil)

		p, err := f.svc.Complete(ctx, 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusCompleted, p.Status)
		assert.NotNil(t, p.PaidOn)
	})

	t.Run("Fail leaves paid_on empty", func(t *testing.T) {
		f := newPaymentFixture()
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(pending(), nil)
		f.paymentRepo.On("UpdateStatus", ctx, int32(9), domain.PaymentStatusPending, domain.PaymentStatusFailed, (*time.Time)(nil)).Return(nil)

		p, err := f.svc.Fail(ctx, 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, p.Status)
		assert.Nil(t, p.PaidOn)
	})

	t.Run("Completed payment cannot transition again", func(t *testing.T) {
		f := newPaymentFixture()
		done := pending()
		done.Status = domain.PaymentStatusCompleted
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(done, nil)

		_, err := f.svc.Cancel(ctx, 9)
		assert.Error(t, err)
		assert.True(t, domain.IsInvalidOperation(err))
		f.paymentRepo.AssertNotCalled(t, "UpdateStatus", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_ConfirmReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("Completes and distributes", func(t *testing.T) {
		f := newPaymentFixture()
		p := &domain.Payment{ID: 9, RentalID: 1, Amount: 3_000_000, Status: domain.PaymentStatusPending}
		rental := &domain.Rental{ID: 1, CarID: 2, RenterID: 3}
		car := testCar()
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(p, nil)
		f.paymentRepo.On("UpdateStatus", ctx, int32(9), domain.PaymentStatusPending, domain.PaymentStatusCompleted, mock.AnythingOfType("*time.Time")).Return(nil)
		f.distSvc.On("CreateForPayment", ctx, int32(9)).Return([]domain.PaymentDistribution{}, nil)
		f.rentalRepo.On("GetByID", ctx, int32(1)).Return(rental, nil)
		f.carRepo.On("GetByID", ctx, int32(2)).Return(car, nil)
		f.userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "owner@test.com"}, nil)
		f.emailSvc.On("SendPaymentReceived", ctx, "owner@test.com", "Toyota Vios", int64(3_000_000)).Return(nil)

		got, err := f.svc.ConfirmReceipt(ctx, 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusCompleted, got.Status)
		f.distSvc.AssertCalled(t, "CreateForPayment", ctx, int32(9))
	})

	t.Run("Splitter failure does not roll back", func(t *testing.T) {
		f := newPaymentFixture()
		p := &domain.Payment{ID: 9, RentalID: 1, Amount: 3_000_000, Status: domain.PaymentStatusPending}
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(p, nil)
		f.paymentRepo.On("UpdateStatus", ctx, int32(9), domain.PaymentStatusPending, domain.PaymentStatusCompleted, mock.AnythingOfType("*time.Time")).Return(nil)
		f.distSvc.On("CreateForPayment", ctx, int32(9)).Return([]domain.PaymentDistribution{}, assert.AnError)
		f.rentalRepo.On("GetByID", ctx, int32(1)).Return(nil, domain.ErrNotFound)

		got, err := f.svc.ConfirmReceipt(ctx, 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusCompleted, got.Status)
	})
}

func TestPaymentService_Refund(t *testing.T) {
	ctx := context.Background()

	completed := func() *domain.Payment {
		return &domain.Payment{ID: 9, RentalID: 1, Amount: 3_000_000, Status: domain.PaymentStatusCompleted,
			Method: domain.PaymentMethodBankTransfer, CommissionRate: 0.15}
	}

	t.Run("Success creates a negative completed row", func(t *testing.T) {
		f := newPaymentFixture()
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(completed(), nil)
		f.paymentRepo.On("RefundedTotal", ctx, int32(9)).Return(int64(0), nil)
		f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		r, err := f.svc.Refund(ctx, 9, 1_000_000, "late pickup")
		assert.NoError(t, err)
		assert.Equal(t, int64(-1_000_000), r.Amount)
		assert.Equal(t, domain.PaymentTypeRefund, r.Type)
		assert.Equal(t, domain.PaymentStatusCompleted, r.Status)
		assert.Equal(t, int32(9), *r.RefundOfID)
		assert.NotNil(t, r.PaidOn)
	})

	t.Run("Cumulative refunds capped at the original amount", func(t *testing.T) {
		f := newPaymentFixture()
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(completed(), nil)
		f.paymentRepo.On("RefundedTotal", ctx, int32(9)).Return(int64(2_500_000), nil)

		_, err := f.svc.Refund(ctx, 9, 1_000_000, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds refundable balance 500000")
		f.paymentRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Pending payment cannot be refunded", func(t *testing.T) {
		f := newPaymentFixture()
		p := completed()
		p.Status = domain.PaymentStatusPending
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(p, nil)

		_, err := f.svc.Refund(ctx, 9, 1_000_000, "")
		assert.Error(t, err)
	})

	t.Run("Refund of a refund rejected", func(t *testing.T) {
		f := newPaymentFixture()
		p := completed()
		p.Amount = -1_000_000
		f.paymentRepo.On("GetByID", ctx, int32(9)).Return(p, nil)

		_, err := f.svc.Refund(ctx, 9, 500_000, "")
		assert.Error(t, err)
	})

	t.Run("Non-positive refund amount rejected", func(t *testing.T) {
		f := newPaymentFixture()
		_, err := f.svc.Refund(ctx, 9, 0, "")
		assert.Error(t, err)
	})
}
