package domain

import "time"

// VehicleCategory represents the category of a vehicle.
type VehicleCategory string

const (
	VehicleCategoryCar  VehicleCategory = "car"
	VehicleCategoryBike VehicleCategory = "bike"
	VehicleCategoryVan  VehicleCategory = "van"
	VehicleCategorySUV  VehicleCategory = "SUV"
)

// AvailabilityStatus represents whether a vehicle can currently be booked.
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityBooked    AvailabilityStatus = "booked"
)

// Vehicle represents a rentable vehicle in the fleet.
// A vehicle is booked exactly when it has one active booking; the
// availability flip is owned by the booking engine, not the registry.
type Vehicle struct {
	ID                 string
	Name               string
	Category           VehicleCategory
	RegistrationNumber string
	DailyRentPrice     float64
	Availability       AvailabilityStatus
	CreatedAt          time.Time
}
