package model

import "time"

// Roles carried in the JWT "role" claim.  ADMIN may write every resource;
// STAFF may only write catalog types and order events.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User represents an application user record as stored in the
// `users` table.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
