package app

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the tables on first start. Constraints mirror the
// domain invariants: unique email and registration number, positive prices,
// a strict date-range check, and cascade deletes from users/vehicles to
// their bookings.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		role VARCHAR(20) NOT NULL CHECK (role IN ('admin', 'customer')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		vehicle_name VARCHAR(100) NOT NULL,
		category VARCHAR(20) NOT NULL CHECK (category IN ('car', 'bike', 'van', 'SUV')),
		registration_number VARCHAR(50) NOT NULL UNIQUE,
		daily_rent_price NUMERIC(10, 2) NOT NULL CHECK (daily_rent_price > 0),
		availability_status VARCHAR(20) NOT NULL CHECK (availability_status IN ('available', 'booked')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		vehicle_id TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		rent_start_date TIMESTAMPTZ NOT NULL,
		rent_end_date TIMESTAMPTZ NOT NULL,
		total_price NUMERIC(10, 2) NOT NULL CHECK (total_price > 0),
		status VARCHAR(20) NOT NULL CHECK (status IN ('active', 'cancelled', 'returned')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT bookings_date_range_chk CHECK (rent_end_date > rent_start_date)
	)`,
}

// InitSchema creates the users, vehicles and bookings tables if they do not
// exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
