package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"carlink-backend/internal/config"
	"carlink-backend/internal/domain"
	"carlink-backend/internal/logger"
	"carlink-backend/internal/pricing"
	"carlink-backend/internal/repository"
)

type rentalService struct {
	rentalRepo     repository.RentalRepository
	carRepo        repository.CarRepository
	paymentRepo    repository.PaymentRepository
	userRepo       repository.UserRepository
	assignmentRepo repository.DriverAssignmentRepository
	emailSvc       EmailService
	billing        config.BillingConfig
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	assignmentRepo repository.DriverAssignmentRepository,
	emailSvc EmailService,
	billing config.BillingConfig,
) RentalService {
	return &rentalService{
		rentalRepo:     rentalRepo,
		carRepo:        carRepo,
		paymentRepo:    paymentRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		emailSvc:       emailSvc,
		billing:        billing,
	}
}

func (s *rentalService) GetQuote(ctx context.Context, carID int32, start, end time.Time, withDriver bool, deliveryKm float64) (*pricing.Breakdown, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	return pricing.Quote(car, start, end, withDriver, deliveryKm)
}

func (s *rentalService) CreateBooking(ctx context.Context, renterID, carID int32, start, end time.Time, withDriver bool, deliveryKm float64) (*domain.Rental, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.Status != domain.CarStatusAvailable {
		return nil, domain.NewInvalidOperation("book", "car is %s", car.Status.Label())
	}

	quote, err := pricing.Quote(car, start, end, withDriver, deliveryKm)
	if err != nil {
		return nil, err
	}

	rt := &domain.Rental{
		CarID:          carID,
		RenterID:       renterID,
		StartDate:      start,
		EndDate:        end,
		TotalPrice:     quote.Total,
		DriverFee:      quote.DriverFee,
		DeliveryFee:    quote.DeliveryFee,
		DeliveryKm:     deliveryKm,
		RequiresDriver: withDriver,
		Status:         domain.RentalStatusPending,
		Notes: fmt.Sprintf("base %d (%d %s), driver %d, delivery %d",
			quote.BasePrice, quote.Units, quote.Unit, quote.DriverFee, quote.DeliveryFee),
	}
	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		return nil, err
	}

	owner, _ := s.userRepo.GetByID(ctx, car.OwnerID)
	renter, _ := s.userRepo.GetByID(ctx, renterID)
	if owner != nil && renter != nil {
		_ = s.emailSvc.SendBookingCreated(ctx, owner.Email, renter.Name, car.Name)
	}

	return rt, nil
}

// depositGate verifies the cumulative completed payments cover the deposit
// threshold. Returns the shortfall in the error so callers can surface it.
func (s *rentalService) depositGate(ctx context.Context, rt *domain.Rental, op string) error {
	paid, err := s.paymentRepo.AmountPaid(ctx, rt.ID)
	if err != nil {
		return err
	}
	required := pricing.DepositThreshold(rt.TotalPrice, s.billing.DepositPercent)
	if paid < required {
		return domain.NewInvalidOperation(op, "deposit not met: paid %d of required %d (short %d)", paid, required, required-paid)
	}
	return nil
}

func (s *rentalService) Confirm(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status != domain.RentalStatusPending {
		return nil, domain.NewInvalidOperation("confirm", "rental is %s, expected %s", rt.Status.Label(), domain.RentalStatusPending.Label())
	}
	if err := s.depositGate(ctx, rt, "confirm"); err != nil {
		return nil, err
	}
	if rt.RequiresDriver {
		if rt.DriverID == nil {
			return nil, domain.NewInvalidOperation("confirm", "rental requires a driver but none is assigned")
		}
		if !rt.DriverAccepted {
			return nil, domain.NewInvalidOperation("confirm", "assigned driver has not accepted")
		}
	}

	rt.Status = domain.RentalStatusConfirmed
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	car, _ := s.carRepo.GetByID(ctx, rt.CarID)
	renter, _ := s.userRepo.GetByID(ctx, rt.RenterID)
	if car != nil && renter != nil {
		_ = s.emailSvc.SendRentalConfirmed(ctx, renter.Email, car.Name)
	}
	return rt, nil
}

func (s *rentalService) Start(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status != domain.RentalStatusConfirmed {
		return nil, domain.NewInvalidOperation("start", "rental is %s, expected %s", rt.Status.Label(), domain.RentalStatusConfirmed.Label())
	}
	// The deposit is re-checked here: a payment may have failed or been
	// refunded between confirmation and pickup.
	if err := s.depositGate(ctx, rt, "start"); err != nil {
		return nil, err
	}

	now := time.Now()
	rt.PickupAt = &now
	rt.Status = domain.RentalStatusActive
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	if err := s.carRepo.UpdateStatus(ctx, rt.CarID, domain.CarStatusRented); err != nil {
		logger.Warn("failed to mark car rented", "car_id", rt.CarID, "rental_id", rt.ID, "error", err)
	}
	return rt, nil
}

func (s *rentalService) Complete(ctx context.Context, rentalID int32, damageFee int64, notes string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	// OVERDUE is ACTIVE past its end date, so both complete the same way.
	if rt.Status != domain.RentalStatusActive && rt.Status != domain.RentalStatusOverdue {
		return nil, domain.NewInvalidOperation("complete", "rental is %s, expected %s", rt.Status.Label(), domain.RentalStatusActive.Label())
	}

	paid, err := s.paymentRepo.AmountPaid(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	if remaining := rt.RemainingBalance(paid); remaining > 0 {
		return nil, domain.NewInvalidOperation("complete", "outstanding balance of %d remains", remaining)
	}

	car, err := s.carRepo.GetByID(ctx, rt.CarID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rt.ReturnAt = &now
	rt.DamageFee = damageFee
	if now.After(rt.EndDate) {
		lateDays := int64(math.Ceil(now.Sub(rt.EndDate).Hours() / 24))
		rt.LateFee = pricing.LateFee(lateDays, car.PricePerDay, s.billing.LateFeeDailyPercent)
	}
	if notes != "" {
		if rt.Notes != "" {
			rt.Notes += "; "
		}
		rt.Notes += notes
	}
	rt.Status = domain.RentalStatusCompleted
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	if err := s.carRepo.UpdateStatus(ctx, rt.CarID, domain.CarStatusAvailable); err != nil {
		logger.Warn("failed to release car", "car_id", rt.CarID, "rental_id", rt.ID, "error", err)
	}

	renter, _ := s.userRepo.GetByID(ctx, rt.RenterID)
	owner, _ := s.userRepo.GetByID(ctx, car.OwnerID)
	if renter != nil {
		_ = s.emailSvc.SendRentalCompleted(ctx, renter.Email, car.Name, rt.TotalPrice)
	}
	if owner != nil {
		_ = s.emailSvc.SendRentalCompleted(ctx, owner.Email, car.Name, rt.TotalPrice)
	}
	return rt, nil
}

func (s *rentalService) Cancel(ctx context.Context, actorID, rentalID int32, reason string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status != domain.RentalStatusPending && rt.Status != domain.RentalStatusConfirmed {
		return nil, domain.NewInvalidOperation("cancel", "rental is %s; only pending or confirmed rentals can be cancelled", rt.Status.Label())
	}
	if actorID == rt.RenterID {
		lead := time.Duration(s.billing.CancelLeadTimeHours) * time.Hour
		if time.Until(rt.StartDate) < lead {
			return nil, domain.NewInvalidOperation("cancel", "cancellation requires at least %d hours before the scheduled start", s.billing.CancelLeadTimeHours)
		}
	}

	if reason != "" {
		if rt.Notes != "" {
			rt.Notes += "; "
		}
		rt.Notes += "cancelled: " + reason
	}
	rt.Status = domain.RentalStatusCancelled
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	car, _ := s.carRepo.GetByID(ctx, rt.CarID)
	if car != nil && car.Status == domain.CarStatusRented {
		if err := s.carRepo.UpdateStatus(ctx, rt.CarID, domain.CarStatusAvailable); err != nil {
			logger.Warn("failed to release car on cancel", "car_id", rt.CarID, "rental_id", rt.ID, "error", err)
		}
	}

	renter, _ := s.userRepo.GetByID(ctx, rt.RenterID)
	if car != nil && renter != nil {
		owner, _ := s.userRepo.GetByID(ctx, car.OwnerID)
		if owner != nil {
			_ = s.emailSvc.SendRentalCancelled(ctx, owner.Email, renter.Name, car.Name, reason)
		}
	}
	return rt, nil
}

func (s *rentalService) AssignDriver(ctx context.Context, ownerID, rentalID, driverID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rt.RequiresDriver {
		return nil, domain.NewInvalidOperation("assign driver", "rental does not require a driver")
	}
	if rt.Status != domain.RentalStatusPending {
		return nil, domain.NewInvalidOperation("assign driver", "rental is %s, expected %s", rt.Status.Label(), domain.RentalStatusPending.Label())
	}

	car, err := s.carRepo.GetByID(ctx, rt.CarID)
	if err != nil {
		return nil, err
	}
	if car.OwnerID != ownerID {
		return nil, domain.NewInvalidOperation("assign driver", "only the car owner can assign a driver")
	}
	if _, err := s.assignmentRepo.GetByOwnerAndDriver(ctx, ownerID, driverID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewInvalidOperation("assign driver", "no active assignment links this driver to the owner")
		}
		return nil, err
	}

	rt.DriverID = &driverID
	rt.DriverAccepted = false
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) AcceptDriverAssignment(ctx context.Context, driverID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.DriverID == nil || *rt.DriverID != driverID {
		return nil, domain.NewInvalidOperation("accept assignment", "rental is not assigned to this driver")
	}
	if rt.DriverAccepted {
		return rt, nil
	}

	rt.DriverAccepted = true
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *rentalService) ListByCarOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByCarOwner(ctx, ownerID, status, page, pageSize)
}
