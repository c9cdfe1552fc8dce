package repository

import (
	"context"

	"rentfleet/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create persists a new vehicle. Returns ErrDuplicate if the
	// registration number is already taken.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByIDForUpdate retrieves a vehicle by ID and locks its row for the
	// remainder of the surrounding transaction. Outside a transaction it
	// behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles, newest first.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// Update replaces the mutable fields of an existing vehicle.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// UpdateAvailability flips the availability status of a vehicle.
	UpdateAvailability(ctx context.Context, id string, status domain.AvailabilityStatus) error

	// Delete removes a vehicle. The storage cascades the delete to all
	// bookings referencing it.
	Delete(ctx context.Context, id string) error
}
