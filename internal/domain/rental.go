package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
)

type Rental struct {
	ID       int32  `json:"id"`
	CarID    int32  `json:"car_id"`
	RenterID int32  `json:"renter_id"`
	DriverID *int32 `json:"driver_id,omitempty"`
	// Scheduled window agreed at booking time.
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	// Actual pickup/return, set by Start and Complete.
	PickupAt *time.Time `json:"pickup_at,omitempty"`
	ReturnAt *time.Time `json:"return_at,omitempty"`
	// Price snapshot captured at booking time. All gates compare against
	// TotalPrice, not live car prices.
	TotalPrice  int64   `json:"total_price"`
	DriverFee   int64   `json:"driver_fee"`
	DeliveryFee int64   `json:"delivery_fee"`
	DeliveryKm  float64 `json:"delivery_km"`
	LateFee     int64   `json:"late_fee"`
	DamageFee   int64   `json:"damage_fee"`

	RequiresDriver bool `json:"requires_driver"`
	DriverAccepted bool `json:"driver_accepted"`

	Status RentalStatus `json:"status"`
	Notes  string       `json:"notes"`
	// Version guards status writes: every transition is a conditional update
	// on (id, version), so the second of two racing transitions loses.
	Version   int64     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// RemainingBalance is the amount still owed against the booked total, given
// the sum of completed positive payments. Late and damage fees are assessed
// at completion and billed separately.
func (r *Rental) RemainingBalance(amountPaid int64) int64 {
	return r.TotalPrice - amountPaid
}
