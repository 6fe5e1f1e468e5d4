package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies an account's authority level
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Account identifies an actor. Only admins may mutate the wheel; user
// accounts exist so provisioned participants can log in.
type Account struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Role       Role      `db:"role" json:"role"`
	AccessCode string    `db:"access_code" json:"-"` // bcrypt hash, never serialized
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// IsAdmin reports whether the account may perform mutating operations
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
