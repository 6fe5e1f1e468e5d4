package repository

import (
	"context"
	"fmt"

	"wheel/database"
	"wheel/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DrawRepository implements the service.DrawRepository interface.
// The draws table is append-only: no update or delete is exposed.
type DrawRepository struct {
	q queryable
}

// NewDrawRepository creates a new draw repository
func NewDrawRepository(db *database.DB) *DrawRepository {
	return &DrawRepository{q: db.Pool}
}

// Create appends a draw record
func (r *DrawRepository) Create(ctx context.Context, draw *models.Draw) error {
	query := `
		INSERT INTO draws (entry_id, result_label, drawn_by, cycle_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id, drawn_at
	`

	err := r.q.QueryRow(ctx, query, draw.EntryID, draw.ResultLabel, draw.DrawnBy, draw.CycleIndex).Scan(
		&draw.ID,
		&draw.DrawnAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create draw for entry %s: %w", draw.EntryID, err)
	}

	return nil
}

// GetMostRecent returns the latest draw by timestamp, or nil if none exists
func (r *DrawRepository) GetMostRecent(ctx context.Context) (*models.Draw, error) {
	query := `
		SELECT id, entry_id, result_label, drawn_by, cycle_index, drawn_at
		FROM draws
		ORDER BY drawn_at DESC
		LIMIT 1
	`

	var draw models.Draw
	err := r.q.QueryRow(ctx, query).Scan(
		&draw.ID,
		&draw.EntryID,
		&draw.ResultLabel,
		&draw.DrawnBy,
		&draw.CycleIndex,
		&draw.DrawnAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get most recent draw: %w", err)
	}

	return &draw, nil
}

// GetMostRecentDetail returns the latest draw joined with the drawing
// admin's name and role, or nil if none exists
func (r *DrawRepository) GetMostRecentDetail(ctx context.Context) (*models.DrawDetail, error) {
	query := `
		SELECT d.id, d.entry_id, d.result_label, d.drawn_by, d.cycle_index, d.drawn_at,
		       a.name, a.role
		FROM draws d
		JOIN accounts a ON a.id = d.drawn_by
		ORDER BY d.drawn_at DESC
		LIMIT 1
	`

	var detail models.DrawDetail
	err := r.q.QueryRow(ctx, query).Scan(
		&detail.ID,
		&detail.EntryID,
		&detail.ResultLabel,
		&detail.DrawnBy,
		&detail.CycleIndex,
		&detail.DrawnAt,
		&detail.DrawnByName,
		&detail.DrawnByRole,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get most recent draw detail: %w", err)
	}

	return &detail, nil
}

// CountByCycle returns the number of draws recorded for a cycle
func (r *DrawRepository) CountByCycle(ctx context.Context, cycleIndex int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM draws
		WHERE cycle_index = $1
	`

	var count int
	err := r.q.QueryRow(ctx, query, cycleIndex).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count draws in cycle %d: %w", cycleIndex, err)
	}

	return count, nil
}

// DistinctEntryIDsByCycle returns the distinct entries drawn in a cycle
func (r *DrawRepository) DistinctEntryIDsByCycle(ctx context.Context, cycleIndex int) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT entry_id
		FROM draws
		WHERE cycle_index = $1
	`

	rows, err := r.q.Query(ctx, query, cycleIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get drawn entries for cycle %d: %w", cycleIndex, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan entry ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entry IDs: %w", err)
	}

	return ids, nil
}
