package postgres

import (
	"context"
	"database/sql"

	"rentfleet/internal/repository"
)

// UnitOfWorkFactory starts PostgreSQL-backed units of work.
type UnitOfWorkFactory struct {
	db *sql.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory.
func NewUnitOfWorkFactory(db *sql.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

// Begin opens a transaction and returns a unit of work scoped to it.
func (f *UnitOfWorkFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &unitOfWork{tx: tx}, nil
}

// unitOfWork exposes transaction-scoped repositories over a single *sql.Tx.
type unitOfWork struct {
	tx *sql.Tx
}

func (u *unitOfWork) Vehicles() repository.VehicleRepository {
	return NewVehicleRepositoryWithTx(u.tx)
}

func (u *unitOfWork) Bookings() repository.BookingRepository {
	return NewBookingRepositoryWithTx(u.tx)
}

func (u *unitOfWork) Commit() error {
	return u.tx.Commit()
}

func (u *unitOfWork) Rollback() error {
	return u.tx.Rollback()
}

// Ensure the factory implements repository.UnitOfWorkFactory.
var _ repository.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
