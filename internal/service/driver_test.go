package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/pricing"
)

func TestDriverService_CreateAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		assignmentRepo := new(MockDriverAssignmentRepo)
		userRepo := new(MockUserRepo)
		svc := NewDriverService(assignmentRepo, userRepo)

		userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Role: domain.UserRoleDriver}, nil)
		assignmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.DriverAssignment")).Return(nil)

		a, err := svc.CreateAssignment(ctx, 10, 5, 400_000)
		assert.NoError(t, err)
		assert.True(t, a.IsActive)
		assert.Equal(t, int64(400_000), a.DailyFee)
	})

	t.Run("Non-driver rejected", func(t *testing.T) {
		assignmentRepo := new(MockDriverAssignmentRepo)
		userRepo := new(MockUserRepo)
		svc := NewDriverService(assignmentRepo, userRepo)

		userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Role: domain.UserRoleCustomer}, nil)

		_, err := svc.CreateAssignment(ctx, 10, 5, 400_000)
		assert.Error(t, err)
		assert.True(t, domain.IsInvalidOperation(err))
	})

	t.Run("Non-positive fee rejected", func(t *testing.T) {
		svc := NewDriverService(new(MockDriverAssignmentRepo), new(MockUserRepo))
		_, err := svc.CreateAssignment(ctx, 10, 5, 0)
		assert.Error(t, err)
	})
}

func TestDriverService_EstimateFee(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	newSvc := func(dailyFee int64) DriverService {
		assignmentRepo := new(MockDriverAssignmentRepo)
		assignmentRepo.On("GetByOwnerAndDriver", ctx, int32(10), int32(5)).Return(
			&domain.DriverAssignment{OwnerID: 10, DriverID: 5, DailyFee: dailyFee, IsActive: true}, nil)
		return NewDriverService(assignmentRepo, new(MockUserRepo))
	}

	t.Run("Daily period reports both figures", func(t *testing.T) {
		svc := newSvc(400_000)
		est, err := svc.EstimateFee(ctx, 10, 5, start, start.Add(48*time.Hour))
		assert.NoError(t, err)
		assert.Equal(t, int64(2), est.Days)
		assert.Equal(t, int64(800_000), est.ContractedFee)
		assert.Equal(t, 2*pricing.DriverDailyRate, est.PlatformRateFee)
		// The platform flat rate and the contracted fee are independent figures.
		assert.NotEqual(t, est.ContractedFee, est.PlatformRateFee)
	})

	t.Run("Sub-day period uses the hourly platform rate", func(t *testing.T) {
		svc := newSvc(400_000)
		est, err := svc.EstimateFee(ctx, 10, 5, start, start.Add(6*time.Hour))
		assert.NoError(t, err)
		assert.Equal(t, int64(1), est.Days)
		assert.Equal(t, int64(400_000), est.ContractedFee)
		assert.Equal(t, 6*pricing.DriverHourlyRate, est.PlatformRateFee)
	})

	t.Run("Inverted period rejected", func(t *testing.T) {
		svc := newSvc(400_000)
		_, err := svc.EstimateFee(ctx, 10, 5, start, start.Add(-time.Hour))
		assert.Error(t, err)
	})
}
