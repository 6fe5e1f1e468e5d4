package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"wheel/events"
	"wheel/models"

	"github.com/google/uuid"
)

// drawService implements the DrawService interface.
//
// There is a single wheel and a single global cycle sequence, so the whole
// read-resolve-select-persist sequence runs under one mutex. The original
// system left this window unprotected; serializing it does not change any
// single-actor behavior, it only pins the outcome of concurrent draws.
type drawService struct {
	mu          sync.Mutex
	entryRepo   EntryRepository
	drawRepo    DrawRepository
	accountRepo AccountRepository
	publisher   EventPublisher

	// pick selects a pool index; swapped out in tests for determinism
	pick func(n int) int
}

// NewDrawService creates a new draw service
func NewDrawService(entryRepo EntryRepository, drawRepo DrawRepository, accountRepo AccountRepository, publisher EventPublisher) DrawService {
	return &drawService{
		entryRepo:   entryRepo,
		drawRepo:    drawRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
		pick:        rand.Intn,
	}
}

// PerformDraw selects one entry from the active pool and appends the draw.
//
// The cycle to assign is resolved by draw count (resolveCycle); which entries
// are still eligible is resolved by drawn-entry ids. The two tests can
// disagree when the pool changed since the last draw: the count test decides
// the cycle number first, and only when no entry of that cycle remains
// undrawn does the draw roll the cycle forward by one. That precedence is the
// historical contract and both checks are kept as-is.
func (s *drawService) PerformDraw(ctx context.Context, actorID string) (*models.Draw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, err := requireAdmin(ctx, s.accountRepo, actorID)
	if err != nil {
		return nil, err
	}

	activeEntries, err := s.entryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active entries: %w", err)
	}
	if len(activeEntries) == 0 {
		return nil, NewError(KindInvalidState, "no active entry is available for a draw")
	}

	cycleIndex, err := s.resolveCycle(ctx, len(activeEntries))
	if err != nil {
		return nil, err
	}

	drawnIDs, err := s.drawRepo.DistinctEntryIDsByCycle(ctx, cycleIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load drawn entries for cycle %d: %w", cycleIndex, err)
	}

	drawnSet := make(map[uuid.UUID]bool, len(drawnIDs))
	for _, id := range drawnIDs {
		drawnSet[id] = true
	}

	var remaining []*models.Entry
	for _, entry := range activeEntries {
		if !drawnSet[entry.ID] {
			remaining = append(remaining, entry)
		}
	}

	// An exhausted cycle rolls over only at the moment a new draw needs it:
	// the full active pool becomes eligible again and the draw is recorded
	// under the next cycle index.
	pool := remaining
	assignedCycle := cycleIndex
	if len(remaining) == 0 {
		pool = activeEntries
		assignedCycle = cycleIndex + 1
	}

	winner := pool[s.pick(len(pool))]

	draw := &models.Draw{
		EntryID:     winner.ID,
		ResultLabel: winner.Label,
		DrawnBy:     admin.ID,
		CycleIndex:  assignedCycle,
	}

	if err := s.drawRepo.Create(ctx, draw); err != nil {
		return nil, fmt.Errorf("failed to persist draw: %w", err)
	}

	s.publisher.Publish(ctx, events.DrawPerformedEvent{
		DrawID:      draw.ID,
		EntryID:     winner.ID,
		ResultLabel: winner.Label,
		CycleIndex:  assignedCycle,
		DrawnBy:     admin.ID,
	})

	return draw, nil
}

// resolveCycle computes the cycle index the next draw belongs to.
//
// A cycle is exhausted by count: once it holds at least as many draws as the
// pool currently has active entries, the next draw opens a new cycle. The
// comparison uses the pool size of right now, not the size when those draws
// were made, so growing or shrinking the pool mid-cycle shifts the threshold
// retroactively.
func (s *drawService) resolveCycle(ctx context.Context, totalActiveEntries int) (int, error) {
	if totalActiveEntries == 0 {
		// Callers already reject an empty wheel; kept as a defensive check.
		return 0, NewError(KindInvalidState, "the wheel contains no entries")
	}

	lastDraw, err := s.drawRepo.GetMostRecent(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load most recent draw: %w", err)
	}
	if lastDraw == nil {
		return 1, nil
	}

	drawsInLastCycle, err := s.drawRepo.CountByCycle(ctx, lastDraw.CycleIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to count draws in cycle %d: %w", lastDraw.CycleIndex, err)
	}

	if drawsInLastCycle >= totalActiveEntries {
		return lastDraw.CycleIndex + 1, nil
	}

	return lastDraw.CycleIndex, nil
}

// GetLastDraw returns the most recent draw with the drawer's identity
func (s *drawService) GetLastDraw(ctx context.Context) (*models.DrawDetail, error) {
	detail, err := s.drawRepo.GetMostRecentDetail(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last draw: %w", err)
	}
	return detail, nil
}
