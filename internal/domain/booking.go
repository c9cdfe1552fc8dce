package domain

import "time"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusReturned  BookingStatus = "returned"
)

// validTransitions defines the state machine for booking status transitions.
// A cancelled booking may still be marked returned by an admin; the vehicle
// flip is idempotent in that case.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusActive:    {BookingStatusCancelled, BookingStatusReturned},
	BookingStatusCancelled: {BookingStatusReturned},
	BookingStatusReturned:  {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// Booking represents a rental booking of a vehicle by a customer.
// TotalPrice is derived from the vehicle's daily rate at creation time and
// never recomputed afterwards.
type Booking struct {
	ID            string
	CustomerID    string
	VehicleID     string
	RentStartDate time.Time
	RentEndDate   time.Time
	TotalPrice    float64
	Status        BookingStatus
	CreatedAt     time.Time
}

// BookingDetail is a booking enriched with customer and vehicle data for
// listings. Customer fields are only populated for the admin view.
type BookingDetail struct {
	Booking

	CustomerName  string
	CustomerEmail string

	VehicleName        string
	RegistrationNumber string
	VehicleCategory    VehicleCategory
}
