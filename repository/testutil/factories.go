package testutil

import (
	"fmt"
	"strings"

	"wheel/models"

	"github.com/google/uuid"
)

// CreateTestAccount creates a test account with default values.
// The access code is the bcrypt hash of "test-code".
func CreateTestAccount(name string, role models.Role) *models.Account {
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
	return &models.Account{
		Name:       name,
		Email:      email,
		Role:       role,
		AccessCode: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	}
}

// CreateTestAdmin creates a test admin account
func CreateTestAdmin(name string) *models.Account {
	return CreateTestAccount(name, models.RoleAdmin)
}

// CreateTestEntry creates an active test entry
func CreateTestEntry(label string, createdBy *uuid.UUID) *models.Entry {
	return &models.Entry{
		Label:     label,
		IsActive:  true,
		CreatedBy: createdBy,
	}
}

// CreateTestDraw creates a test draw for the given entry and cycle
func CreateTestDraw(entry *models.Entry, drawnBy uuid.UUID, cycleIndex int) *models.Draw {
	return &models.Draw{
		EntryID:     entry.ID,
		ResultLabel: entry.Label,
		DrawnBy:     drawnBy,
		CycleIndex:  cycleIndex,
	}
}

// UniqueLabel returns a label that will not collide across subtests
func UniqueLabel(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}
