package service

import (
	"context"

	"github.com/google/uuid"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/repository"
)

type distributionService struct {
	distRepo    repository.DistributionRepository
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
	carRepo     repository.CarRepository
}

func NewDistributionService(
	distRepo repository.DistributionRepository,
	paymentRepo repository.PaymentRepository,
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
) DistributionService {
	return &distributionService{
		distRepo:    distRepo,
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
		carRepo:     carRepo,
	}
}

// CreateForPayment splits a completed positive payment into platform, owner
// and driver shares. The split snapshot on the payment is authoritative and
// already reconciles: platform + owner + driver == amount.
func (s *distributionService) CreateForPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error) {
	exists, err := s.distRepo.ExistsForPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if exists {
		// Idempotent: the first caller won, return the existing set.
		return s.distRepo.ListByPayment(ctx, paymentID)
	}

	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentStatusCompleted {
		return nil, domain.NewInvalidOperation("distribute", "payment is %s, expected %s", p.Status.Label(), domain.PaymentStatusCompleted.Label())
	}
	if p.Amount <= 0 {
		return nil, domain.NewInvalidOperation("distribute", "refunds are not distributed")
	}

	rt, err := s.rentalRepo.GetByID(ctx, p.RentalID)
	if err != nil {
		return nil, err
	}
	car, err := s.carRepo.GetByID(ctx, rt.CarID)
	if err != nil {
		return nil, err
	}

	withDriver := rt.RequiresDriver && rt.DriverID != nil && p.DriverRevenue > 0
	ownerAmount := p.OwnerRevenue
	if !withDriver {
		// No driver row: the owner absorbs the snapshot's driver share so
		// the set still sums exactly to the payment amount.
		ownerAmount += p.DriverRevenue
	}

	dists := []domain.PaymentDistribution{
		{
			PaymentID:      paymentID,
			Recipient:      domain.RecipientPlatform,
			Amount:         p.PlatformFee,
			Status:         domain.DistributionStatusPending,
			TransactionRef: uuid.NewString(),
		},
		{
			PaymentID:       paymentID,
			Recipient:       domain.RecipientCarOwner,
			RecipientUserID: &car.OwnerID,
			Amount:          ownerAmount,
			Status:          domain.DistributionStatusPending,
			TransactionRef:  uuid.NewString(),
		},
	}
	if withDriver {
		dists = append(dists, domain.PaymentDistribution{
			PaymentID:       paymentID,
			Recipient:       domain.RecipientDriver,
			RecipientUserID: rt.DriverID,
			Amount:          p.DriverRevenue,
			Status:          domain.DistributionStatusPending,
			TransactionRef:  uuid.NewString(),
		})
	}

	if err := s.distRepo.CreateBatch(ctx, dists); err != nil {
		return nil, err
	}
	return dists, nil
}

func (s *distributionService) MarkCompleted(ctx context.Context, distributionID int32, transactionRef string) error {
	d, err := s.distRepo.GetByID(ctx, distributionID)
	if err != nil {
		return err
	}
	from := d.Status
	if from != domain.DistributionStatusPending && from != domain.DistributionStatusProcessing {
		return domain.NewInvalidOperation("complete distribution", "distribution is %s", from.Label())
	}
	return s.distRepo.UpdateStatus(ctx, distributionID, from, domain.DistributionStatusCompleted, transactionRef, "")
}

func (s *distributionService) MarkFailed(ctx context.Context, distributionID int32, errorMessage string) error {
	d, err := s.distRepo.GetByID(ctx, distributionID)
	if err != nil {
		return err
	}
	from := d.Status
	if from != domain.DistributionStatusPending && from != domain.DistributionStatusProcessing {
		return domain.NewInvalidOperation("fail distribution", "distribution is %s", from.Label())
	}
	return s.distRepo.UpdateStatus(ctx, distributionID, from, domain.DistributionStatusFailed, "", errorMessage)
}

func (s *distributionService) ListByPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error) {
	return s.distRepo.ListByPayment(ctx, paymentID)
}
