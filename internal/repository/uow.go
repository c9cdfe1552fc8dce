package repository

import "context"

// UnitOfWork groups vehicle and booking operations inside a single
// transaction boundary. The booking engine uses it so that the
// read-availability-then-flip sequence is atomic: the vehicle row stays
// locked from GetByIDForUpdate until Commit or Rollback.
type UnitOfWork interface {
	Vehicles() VehicleRepository
	Bookings() BookingRepository

	Commit() error
	Rollback() error
}

// UnitOfWorkFactory starts unit of work instances.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
