package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentfleet/internal/domain"
	"rentfleet/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.VehicleID,
		booking.RentStartDate,
		booking.RentEndDate,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
	)

	return mapWriteError(err)
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a booking by ID with a row-level lock, held
// until the surrounding transaction commits or rolls back.
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanBooking(r.q.QueryRowContext(ctx, query, id))
}

func (r *BookingRepository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.VehicleID,
		&booking.RentStartDate,
		&booking.RentEndDate,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus updates the status of a booking.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2`

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

// GetAllDetailed retrieves all bookings across all customers, newest first,
// joined with the owning customer and the booked vehicle.
func (r *BookingRepository) GetAllDetailed(ctx context.Context) ([]*domain.BookingDetail, error) {
	query := `
		SELECT b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status, b.created_at,
		       u.name, u.email,
		       v.vehicle_name, v.registration_number, v.category
		FROM bookings b
		JOIN users u ON b.customer_id = u.id
		JOIN vehicles v ON b.vehicle_id = v.id
		ORDER BY b.created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*domain.BookingDetail
	for rows.Next() {
		var d domain.BookingDetail
		if err := rows.Scan(
			&d.ID,
			&d.CustomerID,
			&d.VehicleID,
			&d.RentStartDate,
			&d.RentEndDate,
			&d.TotalPrice,
			&d.Status,
			&d.CreatedAt,
			&d.CustomerName,
			&d.CustomerEmail,
			&d.VehicleName,
			&d.RegistrationNumber,
			&d.VehicleCategory,
		); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

// GetByCustomerDetailed retrieves the bookings owned by a customer, newest
// first, joined with the booked vehicle.
func (r *BookingRepository) GetByCustomerDetailed(ctx context.Context, customerID string) ([]*domain.BookingDetail, error) {
	query := `
		SELECT b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status, b.created_at,
		       v.vehicle_name, v.registration_number, v.category
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.id
		WHERE b.customer_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*domain.BookingDetail
	for rows.Next() {
		var d domain.BookingDetail
		if err := rows.Scan(
			&d.ID,
			&d.CustomerID,
			&d.VehicleID,
			&d.RentStartDate,
			&d.RentEndDate,
			&d.TotalPrice,
			&d.Status,
			&d.CreatedAt,
			&d.VehicleName,
			&d.RegistrationNumber,
			&d.VehicleCategory,
		); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

// Ensure BookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*BookingRepository)(nil)
