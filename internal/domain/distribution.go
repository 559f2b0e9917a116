package domain

import "time"

type DistributionRecipient string

const (
	RecipientPlatform DistributionRecipient = "PLATFORM"
	RecipientCarOwner DistributionRecipient = "CAR_OWNER"
	RecipientDriver   DistributionRecipient = "DRIVER"
)

type DistributionStatus string

const (
	DistributionStatusPending    DistributionStatus = "PENDING"
	DistributionStatusProcessing DistributionStatus = "PROCESSING"
	DistributionStatusCompleted  DistributionStatus = "COMPLETED"
	DistributionStatusFailed     DistributionStatus = "FAILED"
	DistributionStatusCancelled  DistributionStatus = "CANCELLED"
)

// PaymentDistribution is one recipient's share of a completed payment.
// At most one set of distributions exists per payment.
type PaymentDistribution struct {
	ID              int32                 `json:"id"`
	PaymentID       int32                 `json:"payment_id"`
	Recipient       DistributionRecipient `json:"recipient"`
	RecipientUserID *int32                `json:"recipient_user_id,omitempty"` // nil for the platform's own share
	Amount          int64                 `json:"amount"`
	Status          DistributionStatus    `json:"status"`
	TransactionRef  string                `json:"transaction_ref"`
	ErrorMessage    string                `json:"error_message"`
	CreatedOn       time.Time             `json:"created_on"`
	UpdatedOn       time.Time             `json:"updated_on"`
}
