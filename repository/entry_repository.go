package repository

import (
	"context"
	"fmt"

	"wheel/database"
	"wheel/models"
	"wheel/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EntryRepository implements the service.EntryRepository interface
type EntryRepository struct {
	db *database.DB
	q  queryable
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *database.DB) *EntryRepository {
	return &EntryRepository{db: db, q: db.Pool}
}

// CreateBatch inserts a batch of entries atomically. A label collision
// surfaces as a Conflict: the unique constraint on entries.label is the
// backstop for concurrent adds racing past the service-level check.
func (r *EntryRepository) CreateBatch(ctx context.Context, entries []*models.Entry) error {
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO entries (label, is_active, created_by)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		for _, entry := range entries {
			err := tx.QueryRow(ctx, query, entry.Label, entry.IsActive, entry.CreatedBy).Scan(
				&entry.ID,
				&entry.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert entry %q: %w", entry.Label, err)
			}
		}
		return nil
	})

	if isUniqueViolation(err) {
		return &service.DomainError{
			Kind:    service.KindConflict,
			Message: "a label in the batch already exists",
			Err:     err,
		}
	}
	return err
}

// GetByID retrieves an entry by its ID
func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	query := `
		SELECT id, label, is_active, created_by, created_at
		FROM entries
		WHERE id = $1
	`

	var entry models.Entry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.Label,
		&entry.IsActive,
		&entry.CreatedBy,
		&entry.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry by ID %s: %w", id, err)
	}

	return &entry, nil
}

// FindByLabels returns all entries whose label is in the given set,
// active or not
func (r *EntryRepository) FindByLabels(ctx context.Context, labels []string) ([]*models.Entry, error) {
	query := `
		SELECT id, label, is_active, created_by, created_at
		FROM entries
		WHERE label = ANY($1)
	`

	rows, err := r.q.Query(ctx, query, labels)
	if err != nil {
		return nil, fmt.Errorf("failed to find entries by labels: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByLabelExcluding returns the entry holding the given label, ignoring
// the entry with the excluded ID
func (r *EntryRepository) GetByLabelExcluding(ctx context.Context, label string, excludeID uuid.UUID) (*models.Entry, error) {
	query := `
		SELECT id, label, is_active, created_by, created_at
		FROM entries
		WHERE label = $1
		  AND id <> $2
	`

	var entry models.Entry
	err := r.q.QueryRow(ctx, query, label, excludeID).Scan(
		&entry.ID,
		&entry.Label,
		&entry.IsActive,
		&entry.CreatedBy,
		&entry.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry by label %q: %w", label, err)
	}

	return &entry, nil
}

// Update persists label and active-flag changes for an entry
func (r *EntryRepository) Update(ctx context.Context, entry *models.Entry) error {
	query := `
		UPDATE entries
		SET label = $2, is_active = $3
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, entry.ID, entry.Label, entry.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return &service.DomainError{
				Kind:    service.KindConflict,
				Message: fmt.Sprintf("the label %q already exists on the wheel", entry.Label),
				Err:     err,
			}
		}
		return fmt.Errorf("failed to update entry %s: %w", entry.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("entry with ID %s not found", entry.ID)
	}

	return nil
}

// ListActive returns all active entries sorted by label
func (r *EntryRepository) ListActive(ctx context.Context) ([]*models.Entry, error) {
	query := `
		SELECT id, label, is_active, created_by, created_at
		FROM entries
		WHERE is_active = TRUE
		ORDER BY label ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListAll returns every entry, active or not, sorted by creation time
func (r *EntryRepository) ListAll(ctx context.Context) ([]*models.Entry, error) {
	query := `
		SELECT id, label, is_active, created_by, created_at
		FROM entries
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*models.Entry, error) {
	var entries []*models.Entry
	for rows.Next() {
		var entry models.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.Label,
			&entry.IsActive,
			&entry.CreatedBy,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}
