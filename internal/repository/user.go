package repository

import (
	"context"

	"rentfleet/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user. Returns ErrDuplicate if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// Update replaces the profile fields of an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. The storage cascades the delete to all
	// bookings owned by the user.
	Delete(ctx context.Context, id string) error
}
