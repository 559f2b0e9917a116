package domain

import "time"

type CarStatus string

const (
	CarStatusAvailable       CarStatus = "AVAILABLE"
	CarStatusRented          CarStatus = "RENTED"
	CarStatusMaintenance     CarStatus = "MAINTENANCE"
	CarStatusPendingApproval CarStatus = "PENDING_APPROVAL"
	CarStatusReserved        CarStatus = "RESERVED"
)

type Car struct {
	ID      int32  `json:"id"`
	OwnerID int32  `json:"owner_id"`
	Owner   *User  `json:"owner,omitempty"` // Populated when fetching car details
	Name    string `json:"name"`
	Brand   string `json:"brand"`
	Plate   string `json:"plate"`
	// Amounts are whole currency units (VND).
	PricePerDay  int64  `json:"price_per_day"`
	PricePerHour *int64 `json:"price_per_hour,omitempty"` // nil when hourly rental is not offered
	// Pickup location, used as the origin for delivery distance.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Delivery policy. MaxDeliveryDistanceKm == 0 means no delivery offered.
	MaxDeliveryDistanceKm float64   `json:"max_delivery_distance_km"`
	PricePerKmDelivery    int64     `json:"price_per_km_delivery"` // 0 means owner has not configured a rate
	Status                CarStatus `json:"status"`
	CreatedOn             time.Time `json:"created_on"`
	UpdatedOn             time.Time `json:"updated_on"`
}
