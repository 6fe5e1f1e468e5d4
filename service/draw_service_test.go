package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"wheel/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeDrawHistory is an in-memory DrawRepository for multi-draw scenarios
// where wiring mock expectations per call would obscure the test
type fakeDrawHistory struct {
	mu    sync.Mutex
	draws []*models.Draw
}

func (f *fakeDrawHistory) Create(ctx context.Context, draw *models.Draw) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	draw.ID = uuid.New()
	draw.DrawnAt = time.Now()
	stored := *draw
	f.draws = append(f.draws, &stored)
	return nil
}

func (f *fakeDrawHistory) GetMostRecent(ctx context.Context) (*models.Draw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.draws) == 0 {
		return nil, nil
	}
	last := *f.draws[len(f.draws)-1]
	return &last, nil
}

func (f *fakeDrawHistory) GetMostRecentDetail(ctx context.Context) (*models.DrawDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.draws) == 0 {
		return nil, nil
	}
	return &models.DrawDetail{Draw: *f.draws[len(f.draws)-1]}, nil
}

func (f *fakeDrawHistory) CountByCycle(ctx context.Context, cycleIndex int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, draw := range f.draws {
		if draw.CycleIndex == cycleIndex {
			count++
		}
	}
	return count, nil
}

func (f *fakeDrawHistory) DistinctEntryIDsByCycle(ctx context.Context, cycleIndex int) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, draw := range f.draws {
		if draw.CycleIndex == cycleIndex && !seen[draw.EntryID] {
			seen[draw.EntryID] = true
			ids = append(ids, draw.EntryID)
		}
	}
	return ids, nil
}

func testAdmin() *models.Account {
	return &models.Account{
		ID:   uuid.New(),
		Name: "djiby",
		Role: models.RoleAdmin,
	}
}

func testEntries(labels ...string) []*models.Entry {
	entries := make([]*models.Entry, 0, len(labels))
	for _, label := range labels {
		entries = append(entries, &models.Entry{
			ID:       uuid.New(),
			Label:    label,
			IsActive: true,
		})
	}
	return entries
}

// newDrawFixture wires a draw service around the in-memory history with a
// deterministic pick (always index 0)
func newDrawFixture(admin *models.Account, entries []*models.Entry) (*drawService, *MockEntryRepository, *fakeDrawHistory) {
	entryRepo := new(MockEntryRepository)
	accountRepo := new(MockAccountRepository)
	history := &fakeDrawHistory{}

	accountRepo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
	entryRepo.On("ListActive", mock.Anything).Return(entries, nil)

	svc := NewDrawService(entryRepo, history, accountRepo, NoopPublisher{}).(*drawService)
	svc.pick = func(n int) int { return 0 }
	return svc, entryRepo, history
}

func TestDrawService_PerformDraw_Authorization(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed actor id", func(t *testing.T) {
		svc := NewDrawService(new(MockEntryRepository), &fakeDrawHistory{}, new(MockAccountRepository), NoopPublisher{})

		_, err := svc.PerformDraw(ctx, "not-a-uuid")
		require.Error(t, err)
		assert.Equal(t, KindInvalidID, KindOf(err))
	})

	t.Run("unknown actor", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)
		svc := NewDrawService(new(MockEntryRepository), &fakeDrawHistory{}, accountRepo, NoopPublisher{})

		_, err := svc.PerformDraw(ctx, uuid.NewString())
		require.Error(t, err)
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})

	t.Run("non-admin actor", func(t *testing.T) {
		user := &models.Account{ID: uuid.New(), Role: models.RoleUser}
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		svc := NewDrawService(new(MockEntryRepository), &fakeDrawHistory{}, accountRepo, NoopPublisher{})

		_, err := svc.PerformDraw(ctx, user.ID.String())
		require.Error(t, err)
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})
}

func TestDrawService_PerformDraw_EmptyWheel(t *testing.T) {
	ctx := context.Background()
	admin := testAdmin()
	svc, _, _ := newDrawFixture(admin, nil)

	_, err := svc.PerformDraw(ctx, admin.ID.String())
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestDrawService_PerformDraw_FirstDrawOpensCycleOne(t *testing.T) {
	ctx := context.Background()
	admin := testAdmin()
	entries := testEntries("alice", "bob", "carol")
	svc, _, _ := newDrawFixture(admin, entries)

	draw, err := svc.PerformDraw(ctx, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, draw.CycleIndex)
	assert.Equal(t, entries[0].ID, draw.EntryID)
	assert.Equal(t, entries[0].Label, draw.ResultLabel)
	assert.Equal(t, admin.ID, draw.DrawnBy)
}

func TestDrawService_PerformDraw_NoRepeatWithinCycle(t *testing.T) {
	ctx := context.Background()
	admin := testAdmin()
	entries := testEntries("alice", "bob", "carol")
	svc, _, _ := newDrawFixture(admin, entries)

	winners := make(map[uuid.UUID]bool)
	for i := 0; i < len(entries); i++ {
		draw, err := svc.PerformDraw(ctx, admin.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 1, draw.CycleIndex)
		assert.False(t, winners[draw.EntryID], "entry drawn twice within a cycle")
		winners[draw.EntryID] = true
	}
	assert.Len(t, winners, len(entries))
}

func TestDrawService_PerformDraw_ExhaustedCycleRollsOver(t *testing.T) {
	ctx := context.Background()
	admin := testAdmin()
	entries := testEntries("alice", "bob", "carol")
	svc, _, history := newDrawFixture(admin, entries)

	for i := 0; i < len(entries); i++ {
		_, err := svc.PerformDraw(ctx, admin.ID.String())
		require.NoError(t, err)
	}

	// The fourth draw opens cycle 2 with the full pool eligible again
	draw, err := svc.PerformDraw(ctx, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, draw.CycleIndex)

	count, err := history.CountByCycle(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDrawService_PerformDraw_CycleIndexNeverDecreases(t *testing.T) {
	ctx := context.Background()
	admin := testAdmin()
	entries := testEntries("alice", "bob")
	svc, _, _ := newDrawFixture(admin, entries)

	lastCycle := 0
	for i := 0; i < 7; i++ {
		draw, err := svc.PerformDraw(ctx, admin.ID.String())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, draw.CycleIndex, lastCycle)
		lastCycle = draw.CycleIndex
	}
	assert.Equal(t, 4, lastCycle)
}

func TestDrawService_PerformDraw_ShrunkenPoolAdvancesCycleByCount(t *testing.T) {
	// Three entries, two draws in cycle 1, then the pool shrinks to two.
	// The cycle now holds as many draws as there are active entries, so the
	// next draw belongs to cycle 2 even though one entry was never drawn.
	ctx := context.Background()
	admin := testAdmin()
	entries := testEntries("alice", "bob", "carol")
	svc, entryRepo, _ := newDrawFixture(admin, entries)

	for i := 0; i < 2; i++ {
		draw, err := svc.PerformDraw(ctx, admin.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 1, draw.CycleIndex)
	}

	// Shrink the active pool: carol (undrawn) drops out
	entryRepo.ExpectedCalls = nil
	entryRepo.On("ListActive", mock.Anything).Return(entries[:2], nil)

	draw, err := svc.PerformDraw(ctx, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, draw.CycleIndex)
}

func TestDrawService_PerformDraw_GrownPoolExtendsCycle(t *testing.T) {
	// Two entries drawn out of two, then a third is added before the cycle
	// rolled over: the count test no longer sees the cycle as exhausted and
	// the new entry is drawn under the same cycle.
	ctx := context.Background()
	admin := testAdmin()
	entries := testEntries("alice", "bob")
	svc, entryRepo, _ := newDrawFixture(admin, entries)

	for i := 0; i < 2; i++ {
		_, err := svc.PerformDraw(ctx, admin.ID.String())
		require.NoError(t, err)
	}

	grown := append(entries, testEntries("carol")...)
	entryRepo.ExpectedCalls = nil
	entryRepo.On("ListActive", mock.Anything).Return(grown, nil)

	draw, err := svc.PerformDraw(ctx, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, draw.CycleIndex)
	assert.Equal(t, grown[2].ID, draw.EntryID)
}

func TestDrawService_PerformDraw_ConcurrentDrawsGetDistinctCycles(t *testing.T) {
	// With a single active entry every draw exhausts its cycle, so two
	// concurrent draws must land in two consecutive cycles
	ctx := context.Background()
	admin := testAdmin()
	entries := testEntries("alice")
	svc, _, _ := newDrawFixture(admin, entries)

	results := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			draw, err := svc.PerformDraw(ctx, admin.ID.String())
			if assert.NoError(t, err) {
				results <- draw.CycleIndex
			}
		}()
	}
	wg.Wait()
	close(results)

	cycles := make(map[int]bool)
	for cycle := range results {
		cycles[cycle] = true
	}
	assert.True(t, cycles[1])
	assert.True(t, cycles[2])
}

func TestDrawService_PerformDraw_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	admin := testAdmin()
	entries := testEntries("alice")

	entryRepo := new(MockEntryRepository)
	accountRepo := new(MockAccountRepository)
	publisher := new(MockEventPublisher)
	accountRepo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
	entryRepo.On("ListActive", mock.Anything).Return(entries, nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return()

	svc := NewDrawService(entryRepo, &fakeDrawHistory{}, accountRepo, publisher).(*drawService)
	svc.pick = func(n int) int { return 0 }

	_, err := svc.PerformDraw(ctx, admin.ID.String())
	require.NoError(t, err)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestDrawService_GetLastDraw(t *testing.T) {
	ctx := context.Background()

	t.Run("no draws returns nil", func(t *testing.T) {
		svc := NewDrawService(new(MockEntryRepository), &fakeDrawHistory{}, new(MockAccountRepository), NoopPublisher{})
		detail, err := svc.GetLastDraw(ctx)
		require.NoError(t, err)
		assert.Nil(t, detail)
	})

	t.Run("returns the latest draw", func(t *testing.T) {
		admin := testAdmin()
		entries := testEntries("alice")
		svc, _, _ := newDrawFixture(admin, entries)

		draw, err := svc.PerformDraw(ctx, admin.ID.String())
		require.NoError(t, err)

		detail, err := svc.GetLastDraw(ctx)
		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.Equal(t, draw.ID, detail.ID)
	})
}
