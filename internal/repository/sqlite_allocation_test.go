package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, repos Repos) (*domain.Project, *domain.WBSItem) {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Tower")
	require.NoError(t, repos.Projects.Create(ctx, proj))
	item := testutil.NewTestWBSItem(proj.ID, "CW-01", testutil.WithQty(100))
	require.NoError(t, repos.WBSItems.Create(ctx, item))
	return proj, item
}

func TestAllocationRepo_UpsertOverwritesOnlyProvidedFields(t *testing.T) {
	repos := NewSQLiteRepos(testutil.NewTestDB(t))
	ctx := context.Background()
	_, item := seedItem(t, repos)

	require.NoError(t, repos.Allocations.Upsert(ctx, testutil.Cell(item.ID, "2025-01-06", 4, 10)))

	// Second write carries only notes.
	require.NoError(t, repos.Allocations.Upsert(ctx, &domain.AllocationPatch{
		WBSItemID: item.ID,
		Date:      testutil.MustDate("2025-01-06"),
		Notes:     testutil.String("rain in the afternoon"),
		Source:    domain.SourceChat,
	}))

	got, err := repos.Allocations.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4.0, got[0].ActualManpower)
	assert.Equal(t, 10.0, got[0].QtyDone)
	assert.Equal(t, "rain in the afternoon", got[0].Notes)
	assert.Equal(t, domain.SourceChat, got[0].Source)
}

func TestAllocationRepo_UpsertLastWriteWins(t *testing.T) {
	repos := NewSQLiteRepos(testutil.NewTestDB(t))
	ctx := context.Background()
	_, item := seedItem(t, repos)

	require.NoError(t, repos.Allocations.Upsert(ctx, testutil.Cell(item.ID, "2025-01-06", 4, 10)))
	require.NoError(t, repos.Allocations.Upsert(ctx, testutil.Cell(item.ID, "2025-01-06", 6, 12)))

	got, err := repos.Allocations.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 6.0, got[0].ActualManpower)
	assert.Equal(t, 12.0, got[0].QtyDone)
}

func TestAllocationRepo_ListByProjectRange(t *testing.T) {
	repos := NewSQLiteRepos(testutil.NewTestDB(t))
	ctx := context.Background()
	proj, item := seedItem(t, repos)

	for _, d := range []string{"2025-01-05", "2025-01-06", "2025-01-07", "2025-01-08"} {
		require.NoError(t, repos.Allocations.Upsert(ctx, testutil.Cell(item.ID, d, 2, 1)))
	}
	from, to := testutil.MustDate("2025-01-06"), testutil.MustDate("2025-01-07")

	got, err := repos.Allocations.ListByProject(ctx, proj.ID, &from, &to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-01-06", domain.FormatDate(got[0].Date))
	assert.Equal(t, "2025-01-07", domain.FormatDate(got[1].Date))

	all, err := repos.Allocations.ListByProject(ctx, proj.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
