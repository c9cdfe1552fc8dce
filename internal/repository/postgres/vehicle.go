package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentfleet/internal/domain"
	"rentfleet/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, vehicle_name, category, registration_number, daily_rent_price, availability_status, created_at`

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, vehicle_name, category, registration_number, daily_rent_price, availability_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Category,
		vehicle.RegistrationNumber,
		vehicle.DailyRentPrice,
		vehicle.Availability,
		vehicle.CreatedAt,
	)

	return mapWriteError(err)
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanVehicle(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a vehicle by ID with a row-level lock.
// Inside a transaction the lock is held until commit or rollback, so a
// concurrent booking attempt against the same vehicle blocks here and then
// observes the flipped availability.
func (r *VehicleRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return r.scanVehicle(r.q.QueryRowContext(ctx, query, id))
}

func (r *VehicleRepository) scanVehicle(row *sql.Row) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := row.Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Category,
		&vehicle.RegistrationNumber,
		&vehicle.DailyRentPrice,
		&vehicle.Availability,
		&vehicle.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// GetAll retrieves all vehicles, newest first.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.Name,
			&vehicle.Category,
			&vehicle.RegistrationNumber,
			&vehicle.DailyRentPrice,
			&vehicle.Availability,
			&vehicle.CreatedAt,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, rows.Err()
}

// Update replaces the mutable fields of an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET vehicle_name = $1, category = $2, registration_number = $3, daily_rent_price = $4
		WHERE id = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		vehicle.Name,
		vehicle.Category,
		vehicle.RegistrationNumber,
		vehicle.DailyRentPrice,
		vehicle.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateAvailability flips the availability status of a vehicle.
func (r *VehicleRepository) UpdateAvailability(ctx context.Context, id string, status domain.AvailabilityStatus) error {
	query := `UPDATE vehicles SET availability_status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a vehicle. Bookings referencing it are removed by the
// ON DELETE CASCADE constraint.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM vehicles WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
