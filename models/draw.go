package models

import (
	"time"

	"github.com/google/uuid"
)

// Draw is an immutable record of one winner selection.
// ResultLabel snapshots the winning entry's label at draw time so later
// renames do not rewrite history.
type Draw struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EntryID     uuid.UUID `db:"entry_id" json:"entryId"`
	ResultLabel string    `db:"result_label" json:"resultLabel"`
	DrawnBy     uuid.UUID `db:"drawn_by" json:"drawnBy"`
	CycleIndex  int       `db:"cycle_index" json:"cycleIndex"`
	DrawnAt     time.Time `db:"drawn_at" json:"drawnAt"`
}

// DrawDetail is a draw joined with the drawing admin's public identity
// (returned by the last-draw query)
type DrawDetail struct {
	Draw
	DrawnByName string `db:"drawn_by_name" json:"drawnByName"`
	DrawnByRole Role   `db:"drawn_by_role" json:"drawnByRole"`
}
