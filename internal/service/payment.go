package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carlink-backend/internal/config"
	"carlink-backend/internal/domain"
	"carlink-backend/internal/logger"
	"carlink-backend/internal/pricing"
	"carlink-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
	carRepo     repository.CarRepository
	userRepo    repository.UserRepository
	distSvc     DistributionService
	emailSvc    EmailService
	billing     config.BillingConfig
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	distSvc DistributionService,
	emailSvc EmailService,
	billing config.BillingConfig,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
		distSvc:     distSvc,
		emailSvc:    emailSvc,
		billing:     billing,
	}
}

func (s *paymentService) Create(ctx context.Context, rentalID int32, amount int64, method domain.PaymentMethod, ptype domain.PaymentType, notes string) (*domain.Payment, error) {
	if ptype == domain.PaymentTypeRefund {
		return nil, domain.NewInvalidOperation("create payment", "refunds are issued against an existing payment")
	}
	if amount <= 0 {
		return nil, domain.NewInvalidOperation("create payment", "amount must be positive")
	}
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	// Split snapshot: the driver share comes from the rental's driver fee,
	// the commission from the configured platform rate.
	platformFee, ownerRevenue, driverRevenue := pricing.SplitRevenue(amount, s.billing.CommissionRate, s.driverShare(rt))

	p := &domain.Payment{
		RentalID:       rentalID,
		Amount:         amount,
		Method:         method,
		Type:           ptype,
		Status:         domain.PaymentStatusPending,
		TransactionRef: uuid.NewString(),
		CommissionRate: s.billing.CommissionRate,
		PlatformFee:    platformFee,
		OwnerRevenue:   ownerRevenue,
		DriverRevenue:  driverRevenue,
		Notes:          notes,
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// driverShare is the driver's cut of a payment: the rental's driver fee, and
// only when a driver was actually requested and assigned.
func (s *paymentService) driverShare(rt *domain.Rental) int64 {
	if !rt.RequiresDriver || rt.DriverID == nil || rt.DriverFee <= 0 {
		return 0
	}
	return rt.DriverFee
}

func (s *paymentService) Complete(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	return s.transition(ctx, paymentID, domain.PaymentStatusCompleted)
}

func (s *paymentService) Fail(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	return s.transition(ctx, paymentID, domain.PaymentStatusFailed)
}

func (s *paymentService) Cancel(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	return s.transition(ctx, paymentID, domain.PaymentStatusCancelled)
}

// transition performs a guarded status write out of PENDING.
func (s *paymentService) transition(ctx context.Context, paymentID int32, to domain.PaymentStatus) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentStatusPending {
		return nil, domain.NewInvalidOperation("payment "+string(to), "payment is %s, expected %s", p.Status.Label(), domain.PaymentStatusPending.Label())
	}

	var paidOn *time.Time
	if to == domain.PaymentStatusCompleted {
		now := time.Now()
		paidOn = &now
	}
	if err := s.paymentRepo.UpdateStatus(ctx, paymentID, domain.PaymentStatusPending, to, paidOn); err != nil {
		return nil, err
	}
	p.Status = to
	p.PaidOn = paidOn
	return p, nil
}

func (s *paymentService) ConfirmReceipt(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	p, err := s.Complete(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Distribution creation is best-effort: the payment stays confirmed
	// even if splitting fails, and the splitter can be re-invoked later.
	if p.Amount > 0 {
		if _, err := s.distSvc.CreateForPayment(ctx, p.ID); err != nil {
			logger.Warn("failed to create distributions for completed payment",
				"payment_id", p.ID, "rental_id", p.RentalID, "error", err)
		}
	}

	s.notifyOwner(ctx, p)
	return p, nil
}

func (s *paymentService) notifyOwner(ctx context.Context, p *domain.Payment) {
	rt, err := s.rentalRepo.GetByID(ctx, p.RentalID)
	if err != nil {
		return
	}
	car, err := s.carRepo.GetByID(ctx, rt.CarID)
	if err != nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, car.OwnerID)
	if err != nil {
		return
	}
	_ = s.emailSvc.SendPaymentReceived(ctx, owner.Email, car.Name, p.Amount)
}

func (s *paymentService) Refund(ctx context.Context, paymentID int32, amount int64, reason string) (*domain.Payment, error) {
	if amount <= 0 {
		return nil, domain.NewInvalidOperation("refund", "refund amount must be positive")
	}
	orig, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if orig.Status != domain.PaymentStatusCompleted || orig.Amount <= 0 {
		return nil, domain.NewInvalidOperation("refund", "only completed positive payments can be refunded")
	}

	refunded, err := s.paymentRepo.RefundedTotal(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if refunded+amount > orig.Amount {
		return nil, domain.NewInvalidOperation("refund", "refund of %d exceeds refundable balance %d", amount, orig.Amount-refunded)
	}

	now := time.Now()
	refund := &domain.Payment{
		RentalID:       orig.RentalID,
		Amount:         -amount,
		Method:         orig.Method,
		Type:           domain.PaymentTypeRefund,
		Status:         domain.PaymentStatusCompleted, // refunds complete immediately, no approval step
		TransactionRef: uuid.NewString(),
		RefundOfID:     &orig.ID,
		CommissionRate: orig.CommissionRate,
		Notes:          reason,
		PaidOn:         &now,
	}
	if err := s.paymentRepo.Create(ctx, refund); err != nil {
		return nil, err
	}
	return refund, nil
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, paymentID)
}

func (s *paymentService) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	return s.paymentRepo.ListByRental(ctx, rentalID)
}

func (s *paymentService) AmountPaid(ctx context.Context, rentalID int32) (int64, error) {
	return s.paymentRepo.AmountPaid(ctx, rentalID)
}

func (s *paymentService) OwnerRevenueBetween(ctx context.Context, ownerID int32, from, to time.Time) (int64, error) {
	return s.paymentRepo.OwnerRevenueBetween(ctx, ownerID, from, to)
}
