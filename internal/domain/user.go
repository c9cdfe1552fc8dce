package domain

import "time"

// Role represents the access role of an authenticated user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User represents an account in the system.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string // bcrypt hash, never returned to callers
	Phone     string
	Role      Role
	CreatedAt time.Time
}

// Identity is the authenticated (requester, role) pair attached to every
// request by the auth middleware.
type Identity struct {
	UserID string
	Role   Role
}
