package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/scheduler"
	"github.com/alexanderramin/sitepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.ProjectRepo    = (*testutil.MemProjects)(nil)
	_ repository.WBSItemRepo    = (*testutil.MemWBSItems)(nil)
	_ repository.AllocationRepo = (*testutil.MemAllocations)(nil)
	_ repository.BaselineRepo   = (*testutil.MemBaselines)(nil)
	_ repository.ForecastRepo   = (*testutil.MemForecasts)(nil)
	_ repository.ChatLogRepo    = (*testutil.MemChatLogs)(nil)
	_ db.UnitOfWork             = testutil.PassthroughUoW{}
)

// setupRepos returns SQLite repositories over a fresh in-memory database.
func setupRepos(t *testing.T) (repository.Repos, db.UnitOfWork, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteRepos(database), testutil.NewTestUoW(database), database
}

func memRepos(m *testutil.MemStore) repository.Repos {
	return repository.Repos{
		Projects:    m.Projects,
		WBSItems:    m.WBSItems,
		Allocations: m.Allocations,
		Baselines:   m.Baselines,
		Forecasts:   m.Forecasts,
		ChatLogs:    m.ChatLogs,
	}
}

// memBind hands the same memstore repos to every transaction.
func memBind(repos repository.Repos) TxRepos {
	return func(db.DBTX) repository.Repos { return repos }
}

func seedProject(t *testing.T, repos repository.Repos, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("Riverside Tower", opts...)
	require.NoError(t, repos.Projects.Create(context.Background(), p))
	return p
}

func seedItem(t *testing.T, repos repository.Repos, projectID, code string, opts ...testutil.WBSOption) *domain.WBSItem {
	t.Helper()
	it := testutil.NewTestWBSItem(projectID, code, opts...)
	require.NoError(t, repos.WBSItems.Create(context.Background(), it))
	return it
}

func seedCell(t *testing.T, repos repository.Repos, itemID, date string, manpower, qty float64) {
	t.Helper()
	require.NoError(t, repos.Allocations.Upsert(context.Background(), testutil.Cell(itemID, date, manpower, qty)))
}

func ptrTime(t time.Time) *time.Time { return &t }

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) byName(name string) []UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func TestHistoryByItem(t *testing.T) {
	allocs := []*domain.DailyAllocation{
		{WBSItemID: "a", Date: testutil.MustDate("2025-03-01"), ActualManpower: 3, QtyDone: 1},
		{WBSItemID: "b", Date: testutil.MustDate("2025-03-01"), ActualManpower: 2},
		{WBSItemID: "a", Date: testutil.MustDate("2025-03-02"), ActualManpower: 4, QtyDone: 2},
	}
	got := historyByItem(allocs)
	require.Len(t, got["a"], 2)
	assert.Equal(t, scheduler.DayActual{Date: testutil.MustDate("2025-03-02"), Manpower: 4, QtyDone: 2}, got["a"][1])
	assert.Len(t, got["b"], 1)
}

func TestLeafItems(t *testing.T) {
	items := []*domain.WBSItem{{Code: "1", IsSummary: true}, {Code: "1.1"}, {Code: "1.2"}}
	got := leafItems(items)
	require.Len(t, got, 2)
	assert.Equal(t, "1.1", got[0].Code)
}

func TestResolveNow(t *testing.T) {
	now := time.Date(2025, 3, 15, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, testutil.MustDate("2025-03-15"), resolveNow(&now))
	assert.False(t, resolveNow(nil).IsZero())
}
