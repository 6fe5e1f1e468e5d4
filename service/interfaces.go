package service

import (
	"context"

	"wheel/events"
	"wheel/models"

	"github.com/google/uuid"
)

// EntryRepository defines the interface for wheel entry data access.
// Label uniqueness is enforced by the store across all entries, active or not.
type EntryRepository interface {
	// CreateBatch inserts a batch of entries atomically
	CreateBatch(ctx context.Context, entries []*models.Entry) error

	// GetByID retrieves an entry by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Entry, error)

	// FindByLabels returns all entries whose label is in the given set,
	// regardless of active flag
	FindByLabels(ctx context.Context, labels []string) ([]*models.Entry, error)

	// GetByLabelExcluding returns the entry holding the given label, if any,
	// ignoring the entry with the excluded ID
	GetByLabelExcluding(ctx context.Context, label string, excludeID uuid.UUID) (*models.Entry, error)

	// Update persists label and active-flag changes for an entry
	Update(ctx context.Context, entry *models.Entry) error

	// ListActive returns all active entries sorted by label
	ListActive(ctx context.Context) ([]*models.Entry, error)

	// ListAll returns every entry, active or not
	ListAll(ctx context.Context) ([]*models.Entry, error)
}

// DrawRepository defines the interface for the append-only draw history
type DrawRepository interface {
	// Create appends a draw record
	Create(ctx context.Context, draw *models.Draw) error

	// GetMostRecent returns the latest draw by timestamp, or nil if none exists
	GetMostRecent(ctx context.Context) (*models.Draw, error)

	// GetMostRecentDetail returns the latest draw joined with the drawing
	// admin's name and role, or nil if none exists
	GetMostRecentDetail(ctx context.Context) (*models.DrawDetail, error)

	// CountByCycle returns the number of draws recorded for a cycle
	CountByCycle(ctx context.Context, cycleIndex int) (int, error)

	// DistinctEntryIDsByCycle returns the distinct entries drawn in a cycle
	DistinctEntryIDsByCycle(ctx context.Context, cycleIndex int) ([]uuid.UUID, error)
}

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// GetByEmail retrieves an account by its (lowercased) email
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByEmailExcluding returns the account holding the given email, if any,
	// ignoring the account with the excluded ID
	GetByEmailExcluding(ctx context.Context, email string, excludeID uuid.UUID) (*models.Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *models.Account) error

	// Update persists name, email and access-code changes for an account
	Update(ctx context.Context, account *models.Account) error

	// GetAll returns all accounts sorted by creation time
	GetAll(ctx context.Context) ([]*models.Account, error)

	// ListAdmins returns all admin accounts sorted by creation time
	ListAdmins(ctx context.Context) ([]*models.Account, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// EntryService defines the lifecycle operations for wheel entries
type EntryService interface {
	// AddEntries trims, deduplicates and inserts the given labels as active
	// entries, provisioning an account per inserted label best-effort
	AddEntries(ctx context.Context, actorID string, labels []string) (*models.AddEntriesResult, error)

	// RenameEntry changes an entry's label, keeping labels globally unique
	RenameEntry(ctx context.Context, actorID, entryID, newLabel string) (*models.Entry, error)

	// DeactivateEntry soft-deletes an entry; deactivating an already
	// inactive entry is a conflict, not a no-op
	DeactivateEntry(ctx context.Context, actorID, entryID string) (*models.Entry, error)

	// ListActiveEntries returns the current active pool sorted by label
	ListActiveEntries(ctx context.Context) ([]*models.Entry, error)
}

// DrawService defines the winner selection operations
type DrawService interface {
	// PerformDraw selects one entry from the active pool, never repeating an
	// entry within a cycle, and appends the draw to history
	PerformDraw(ctx context.Context, actorID string) (*models.Draw, error)

	// GetLastDraw returns the most recent draw with drawer identity,
	// or nil if no draw has happened yet
	GetLastDraw(ctx context.Context) (*models.DrawDetail, error)
}

// AccountService defines account resolution and maintenance operations
type AccountService interface {
	// Login verifies an email and access code pair
	Login(ctx context.Context, email, accessCode string) (*models.Account, error)

	// ListAccounts returns all accounts; admin only
	ListAccounts(ctx context.Context, actorID string) ([]*models.Account, error)

	// ListAdmins returns the admin accounts (public identity only)
	ListAdmins(ctx context.Context) ([]*models.Account, error)

	// UpdateAccountEmail changes an account's email, keeping emails unique
	UpdateAccountEmail(ctx context.Context, actorID, accountID, newEmail string) (*models.Account, error)

	// UpdateAccountName changes an account's display name
	UpdateAccountName(ctx context.Context, actorID, accountID, newName string) (*models.Account, error)

	// EnsureAdmin creates or updates the seed admin account
	EnsureAdmin(ctx context.Context, name, email, accessCode string) (*models.Account, error)
}
