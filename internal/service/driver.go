package service

import (
	"context"
	"math"
	"time"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/pricing"
	"carlink-backend/internal/repository"
)

type driverService struct {
	assignmentRepo repository.DriverAssignmentRepository
	userRepo       repository.UserRepository
}

func NewDriverService(assignmentRepo repository.DriverAssignmentRepository, userRepo repository.UserRepository) DriverService {
	return &driverService{assignmentRepo: assignmentRepo, userRepo: userRepo}
}

func (s *driverService) CreateAssignment(ctx context.Context, ownerID, driverID int32, dailyFee int64) (*domain.DriverAssignment, error) {
	if dailyFee <= 0 {
		return nil, domain.NewInvalidOperation("create assignment", "daily fee must be positive")
	}
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Role != domain.UserRoleDriver {
		return nil, domain.NewInvalidOperation("create assignment", "user %d is not a driver", driverID)
	}

	a := &domain.DriverAssignment{
		OwnerID:  ownerID,
		DriverID: driverID,
		DailyFee: dailyFee,
		IsActive: true,
	}
	if err := s.assignmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *driverService) ListAssignments(ctx context.Context, ownerID int32) ([]domain.DriverAssignment, error) {
	return s.assignmentRepo.ListByOwner(ctx, ownerID)
}

// EstimateFee returns the platform flat-rate figure (what the booking quote
// charges) next to the assignment's contracted figure. The two sources are
// known to disagree; which one the product honors is an open pricing
// decision, so both are reported.
func (s *driverService) EstimateFee(ctx context.Context, ownerID, driverID int32, start, end time.Time) (*DriverFeeEstimate, error) {
	a, err := s.assignmentRepo.GetByOwnerAndDriver(ctx, ownerID, driverID)
	if err != nil {
		return nil, err
	}

	d := end.Sub(start)
	if d <= 0 {
		return nil, domain.NewInvalidOperation("estimate fee", "end must be after start")
	}
	days := int64(math.Ceil(d.Hours() / 24))
	if days < 1 {
		days = 1
	}

	est := &DriverFeeEstimate{
		ContractedDailyFee: a.DailyFee,
		ContractedFee:      days * a.DailyFee,
		Days:               days,
	}
	if d < 24*time.Hour {
		est.PlatformRateFee = int64(math.Ceil(d.Hours())) * pricing.DriverHourlyRate
	} else {
		est.PlatformRateFee = days * pricing.DriverDailyRate
	}
	return est, nil
}
