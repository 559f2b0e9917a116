package service

import (
	"context"
	"time"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/pricing"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, error)
	Login(ctx context.Context, email, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type RentalService interface {
	// GetQuote prices a prospective booking without creating anything.
	GetQuote(ctx context.Context, carID int32, start, end time.Time, withDriver bool, deliveryKm float64) (*pricing.Breakdown, error)
	// CreateBooking prices and creates a PENDING rental.
	CreateBooking(ctx context.Context, renterID, carID int32, start, end time.Time, withDriver bool, deliveryKm float64) (*domain.Rental, error)
	// Confirm moves PENDING -> CONFIRMED behind the deposit and driver gates.
	Confirm(ctx context.Context, rentalID int32) (*domain.Rental, error)
	// Start moves CONFIRMED -> ACTIVE, re-checks the deposit, records pickup
	// and flips the car to RENTED.
	Start(ctx context.Context, rentalID int32) (*domain.Rental, error)
	// Complete moves ACTIVE/OVERDUE -> COMPLETED once fully paid, applying
	// damage and late fees and releasing the car.
	Complete(ctx context.Context, rentalID int32, damageFee int64, notes string) (*domain.Rental, error)
	// Cancel moves PENDING/CONFIRMED -> CANCELLED. A renter-initiated cancel
	// requires the configured lead time before the scheduled start.
	Cancel(ctx context.Context, actorID, rentalID int32, reason string) (*domain.Rental, error)

	AssignDriver(ctx context.Context, ownerID, rentalID, driverID int32) (*domain.Rental, error)
	AcceptDriverAssignment(ctx context.Context, driverID, rentalID int32) (*domain.Rental, error)

	GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByCarOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
}

type PaymentService interface {
	// Create records a PENDING payment attempt against a rental, with the
	// revenue split snapshot filled in.
	Create(ctx context.Context, rentalID int32, amount int64, method domain.PaymentMethod, ptype domain.PaymentType, notes string) (*domain.Payment, error)
	// Complete/Fail/Cancel are guarded writes out of PENDING.
	Complete(ctx context.Context, paymentID int32) (*domain.Payment, error)
	Fail(ctx context.Context, paymentID int32) (*domain.Payment, error)
	Cancel(ctx context.Context, paymentID int32) (*domain.Payment, error)
	// ConfirmReceipt is the owner-facing completion: the payment is marked
	// COMPLETED and distributions are created. Splitter failure does not
	// roll back the confirmation.
	ConfirmReceipt(ctx context.Context, paymentID int32) (*domain.Payment, error)
	// Refund issues a negative REFUND payment against a completed positive
	// one; cumulative refunds never exceed the original amount.
	Refund(ctx context.Context, paymentID int32, amount int64, reason string) (*domain.Payment, error)

	GetPayment(ctx context.Context, paymentID int32) (*domain.Payment, error)
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
	AmountPaid(ctx context.Context, rentalID int32) (int64, error)
	OwnerRevenueBetween(ctx context.Context, ownerID int32, from, to time.Time) (int64, error)
}

type DistributionService interface {
	// CreateForPayment splits a completed positive payment into recipient
	// shares. Idempotent: an existing set is returned as-is.
	CreateForPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error)
	// MarkCompleted/MarkFailed are manual operator transitions.
	MarkCompleted(ctx context.Context, distributionID int32, transactionRef string) error
	MarkFailed(ctx context.Context, distributionID int32, errorMessage string) error
	ListByPayment(ctx context.Context, paymentID int32) ([]domain.PaymentDistribution, error)
}

type DriverService interface {
	CreateAssignment(ctx context.Context, ownerID, driverID int32, dailyFee int64) (*domain.DriverAssignment, error)
	ListAssignments(ctx context.Context, ownerID int32) ([]domain.DriverAssignment, error)
	// EstimateFee returns both the platform flat-rate estimate used at
	// booking time and the assignment's contracted figure. The two are not
	// reconciled anywhere; surfacing both is deliberate.
	EstimateFee(ctx context.Context, ownerID, driverID int32, start, end time.Time) (*DriverFeeEstimate, error)
}

// DriverFeeEstimate carries the two driver-fee figures side by side.
type DriverFeeEstimate struct {
	PlatformRateFee    int64 `json:"platform_rate_fee"`
	ContractedFee      int64 `json:"contracted_fee"`
	ContractedDailyFee int64 `json:"contracted_daily_fee"`
	Days               int64 `json:"days"`
}

type EmailService interface {
	SendBookingCreated(ctx context.Context, ownerEmail, renterName, carName string) error
	SendRentalConfirmed(ctx context.Context, renterEmail, carName string) error
	SendRentalCancelled(ctx context.Context, ownerEmail, renterName, carName, reason string) error
	SendRentalCompleted(ctx context.Context, email, carName string, totalPrice int64) error
	SendOverdueReminder(ctx context.Context, renterEmail, carName string) error
	SendPaymentReceived(ctx context.Context, ownerEmail, carName string, amount int64) error
}
