package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carlink-backend/internal/domain"
)

func TestDistributionRepository_CreateBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewDistributionRepository(db)
	ctx := context.Background()

	ownerID := int32(10)
	dists := []domain.PaymentDistribution{
		{PaymentID: 11, Recipient: domain.RecipientPlatform, Amount: 1_500_000, Status: domain.DistributionStatusPending, TransactionRef: "ref-p"},
		{PaymentID: 11, Recipient: domain.RecipientCarOwner, RecipientUserID: &ownerID, Amount: 8_500_000, Status: domain.DistributionStatusPending, TransactionRef: "ref-o"},
	}

	t.Run("Inserts the whole set in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payment_distributions").
			WithArgs(int32(11), domain.RecipientPlatform, (*int32)(nil), int64(1_500_000),
				domain.DistributionStatusPending, "ref-p", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO payment_distributions").
			WithArgs(int32(11), domain.RecipientCarOwner, &ownerID, int64(8_500_000),
				domain.DistributionStatusPending, "ref-o", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		err := repo.CreateBatch(ctx, dists)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), dists[0].ID)
		assert.Equal(t, int32(2), dists[1].ID)
	})

	t.Run("Insert failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payment_distributions").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.CreateBatch(ctx, dists)
		assert.Error(t, err)
	})
}

func TestDistributionRepository_ExistsForPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewDistributionRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(11)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForPayment(ctx, 11)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestDistributionRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewDistributionRepository(db)
	ctx := context.Background()

	t.Run("Guarded transition succeeds", func(t *testing.T) {
		mock.ExpectExec("UPDATE payment_distributions").
			WithArgs(domain.DistributionStatusCompleted, "bank-ref", "", sqlmock.AnyArg(), int32(1), domain.DistributionStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 1, domain.DistributionStatusPending, domain.DistributionStatusCompleted, "bank-ref", "")
		assert.NoError(t, err)
	})

	t.Run("Guard miss yields a conflict", func(t *testing.T) {
		mock.ExpectExec("UPDATE payment_distributions").
			WithArgs(domain.DistributionStatusFailed, "", "bank rejected", sqlmock.AnyArg(), int32(1), domain.DistributionStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 1, domain.DistributionStatusPending, domain.DistributionStatusFailed, "", "bank rejected")
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}
