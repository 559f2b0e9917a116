// Package pricing derives a rental price from the car's rates, the requested
// window, and the requested services. Both the booking flow and the quote API
// go through Quote, so the two call paths cannot diverge.
package pricing

import (
	"math"
	"time"

	"carlink-backend/internal/domain"
)

// Platform-wide flat rates, whole currency units (VND).
const (
	// DriverHourlyRate and DriverDailyRate are the platform's flat driver
	// service rates applied at booking time. They are intentionally not
	// read from the assigned driver's contracted daily fee; see
	// DriverAssignment for the contracted figure.
	DriverHourlyRate int64 = 62_500
	DriverDailyRate  int64 = 500_000

	// DeliveryBaseFee covers delivery up to DeliveryBaseKm from the car's
	// location; distance beyond that is billed per km.
	DeliveryBaseFee int64   = 50_000
	DeliveryBaseKm  float64 = 5
	// DefaultPricePerKm applies when the owner has not configured a rate.
	DefaultPricePerKm int64 = 5_000
)

const (
	minRentalDuration = 4 * time.Hour
	hoursPerDay       = 24
)

type Unit string

const (
	UnitHour Unit = "hour"
	UnitDay  Unit = "day"
)

// Breakdown is the priced result of a quote request.
type Breakdown struct {
	Unit        Unit  `json:"unit"`
	Units       int64 `json:"units"`
	BasePrice   int64 `json:"base_price"`
	DriverFee   int64 `json:"driver_fee"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}

// Quote prices a rental of car for [start, end). deliveryKm <= 0 means the
// renter picks the car up themselves.
func Quote(car *domain.Car, start, end time.Time, withDriver bool, deliveryKm float64) (*Breakdown, error) {
	d := end.Sub(start)
	if d < minRentalDuration {
		return nil, domain.NewInvalidOperation("quote", "rental must be at least %d hours", int(minRentalDuration.Hours()))
	}

	hours := int64(math.Ceil(d.Hours()))
	days := int64(math.Ceil(d.Hours() / hoursPerDay))
	if days < 1 {
		days = 1
	}

	b := &Breakdown{}
	if d < hoursPerDay*time.Hour {
		if car.PricePerHour == nil || *car.PricePerHour <= 0 {
			return nil, domain.NewInvalidOperation("quote", "car does not offer hourly rental")
		}
		b.Unit = UnitHour
		b.Units = hours
		b.BasePrice = hours * *car.PricePerHour
		if withDriver {
			b.DriverFee = hours * DriverHourlyRate
		}
	} else {
		b.Unit = UnitDay
		b.Units = days
		b.BasePrice = days * car.PricePerDay
		if withDriver {
			b.DriverFee = days * DriverDailyRate
		}
	}

	fee, err := DeliveryFee(car, deliveryKm)
	if err != nil {
		return nil, err
	}
	b.DeliveryFee = fee

	b.Total = b.BasePrice + b.DriverFee + b.DeliveryFee
	return b, nil
}

// DeliveryFee computes the delivery charge for bringing the car deliveryKm
// from its location to the drop-off point.
func DeliveryFee(car *domain.Car, deliveryKm float64) (int64, error) {
	if deliveryKm <= 0 {
		return 0, nil
	}
	if car.MaxDeliveryDistanceKm <= 0 {
		return 0, domain.NewInvalidOperation("delivery", "car does not offer delivery")
	}
	if deliveryKm > car.MaxDeliveryDistanceKm {
		return 0, domain.NewInvalidOperation("delivery", "delivery distance %.1f km exceeds maximum %.1f km", deliveryKm, car.MaxDeliveryDistanceKm)
	}
	if deliveryKm <= DeliveryBaseKm {
		return DeliveryBaseFee, nil
	}
	perKm := car.PricePerKmDelivery
	if perKm <= 0 {
		perKm = DefaultPricePerKm
	}
	extra := int64(math.Round((deliveryKm - DeliveryBaseKm) * float64(perKm)))
	return DeliveryBaseFee + extra, nil
}

// DepositThreshold is the minimum cumulative completed payment required to
// advance a rental past PENDING. Rounded to whole currency units so the
// comparison is not defeated by floating-point noise.
func DepositThreshold(totalPrice int64, depositPercent float64) int64 {
	return int64(math.Round(float64(totalPrice) * depositPercent))
}

// LateFee charges a fraction of the car's daily price per late day.
func LateFee(lateDays int64, pricePerDay int64, dailyPercent float64) int64 {
	if lateDays <= 0 {
		return 0
	}
	return int64(math.Round(float64(lateDays) * float64(pricePerDay) * dailyPercent))
}

// SplitRevenue partitions a payment amount into platform commission, owner
// revenue and driver fee. The commission is rounded first and the owner share
// absorbs any residual, so the three parts always sum exactly to amount.
func SplitRevenue(amount int64, commissionRate float64, driverFee int64) (platformFee, ownerRevenue, driverRevenue int64) {
	platformFee = int64(math.Round(float64(amount) * commissionRate))
	driverRevenue = driverFee
	if driverRevenue > amount-platformFee {
		driverRevenue = amount - platformFee
	}
	if driverRevenue < 0 {
		driverRevenue = 0
	}
	ownerRevenue = amount - platformFee - driverRevenue
	return platformFee, ownerRevenue, driverRevenue
}
