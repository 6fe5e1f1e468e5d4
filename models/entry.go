package models

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents a participant label on the wheel
type Entry struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Label     string     `db:"label" json:"label"`
	IsActive  bool       `db:"is_active" json:"isActive"`
	CreatedBy *uuid.UUID `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

// AddEntriesResult reports the outcome of adding a batch of labels.
// AccountsCreated counts the best-effort account provisioning side effect
// and may be lower than Inserted when provisioning partially fails.
type AddEntriesResult struct {
	Inserted        int `json:"inserted"`
	AccountsCreated int `json:"accountsCreated"`
}
