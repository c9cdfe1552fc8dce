package repository

import (
	"context"

	"rentfleet/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByIDForUpdate retrieves a booking by ID and locks its row for the
	// remainder of the surrounding transaction. Outside a transaction it
	// behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error)

	// UpdateStatus updates the status of a booking.
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error

	// GetAllDetailed retrieves all bookings across all customers, newest
	// first, enriched with customer and vehicle data.
	GetAllDetailed(ctx context.Context) ([]*domain.BookingDetail, error)

	// GetByCustomerDetailed retrieves the bookings owned by a customer,
	// newest first, enriched with vehicle data.
	GetByCustomerDetailed(ctx context.Context, customerID string) ([]*domain.BookingDetail, error)
}
