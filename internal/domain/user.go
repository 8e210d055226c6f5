package domain

import "time"

// Role distinguishes buyers from suppliers.
type Role string

const (
	RoleBuyer    Role = "BUYER"
	RoleSupplier Role = "SUPPLIER"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for marketplace accounts. Suppliers carry the
// same record with RoleSupplier plus the optional business fields.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	BusinessName *string
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
