package domain

import "time"

// DriverAssignment links an owner to a driver with a contracted daily fee.
// It is the source for driver-fee estimates; the booking-time quote uses the
// platform's flat driver rates instead (see pricing package).
type DriverAssignment struct {
	ID        int32     `json:"id"`
	OwnerID   int32     `json:"owner_id"`
	DriverID  int32     `json:"driver_id"`
	DailyFee  int64     `json:"daily_fee"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
