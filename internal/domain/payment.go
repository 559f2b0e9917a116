package domain

import "time"

type PaymentType string

const (
	PaymentTypeDeposit     PaymentType = "DEPOSIT"
	PaymentTypeRentalFee   PaymentType = "RENTAL_FEE"
	PaymentTypeLateFee     PaymentType = "LATE_FEE"
	PaymentTypeDamageFee   PaymentType = "DAMAGE_FEE"
	PaymentTypeRefund      PaymentType = "REFUND"
	PaymentTypeFullPayment PaymentType = "FULL_PAYMENT"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodEWallet      PaymentMethod = "E_WALLET"
)

type Payment struct {
	ID       int32 `json:"id"`
	RentalID int32 `json:"rental_id"`
	// Amount is sign-significant: positive for charges, negative for refunds.
	Amount         int64         `json:"amount"`
	Method         PaymentMethod `json:"method"`
	Type           PaymentType   `json:"type"`
	Status         PaymentStatus `json:"status"`
	TransactionRef string        `json:"transaction_ref"`
	// RefundOfID links a REFUND row back to the payment it reverses.
	RefundOfID *int32 `json:"refund_of_id,omitempty"`
	// Revenue split snapshot, filled at creation time from the owning
	// rental's driver fee and the platform commission rate.
	CommissionRate float64    `json:"commission_rate"`
	PlatformFee    int64      `json:"platform_fee"`
	OwnerRevenue   int64      `json:"owner_revenue"`
	DriverRevenue  int64      `json:"driver_revenue"`
	Notes          string     `json:"notes"`
	PaidOn         *time.Time `json:"paid_on,omitempty"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
}
