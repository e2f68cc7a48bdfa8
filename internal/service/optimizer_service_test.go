package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/scheduler"
	"github.com/alexanderramin/sitepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizerService_Optimize(t *testing.T) {
	ctx := context.Background()
	repos := memRepos(testutil.NewMemStore())
	proj := seedProject(t, repos)
	seedItem(t, repos, proj.ID, "0", testutil.AsSummary())
	behind := seedItem(t, repos, proj.ID, "A", testutil.WithQty(100), testutil.WithSortOrder(1))
	ahead := seedItem(t, repos, proj.ID, "C", testutil.WithQty(100), testutil.WithSortOrder(2))
	onPlan := seedItem(t, repos, proj.ID, "F", testutil.WithQty(100), testutil.WithSortOrder(3))
	seedItem(t, repos, proj.ID, "G", testutil.WithSortOrder(4))
	seedCell(t, repos, behind.ID, "2025-03-01", 3, 50)
	seedCell(t, repos, ahead.ID, "2025-03-01", 4, 120)
	seedCell(t, repos, onPlan.ID, "2025-03-01", 2, 100)

	svc := NewOptimizerService(repos.Projects, repos.WBSItems, repos.Allocations, scheduler.DefaultThresholds())
	resp, err := svc.Optimize(ctx, app.OptimizeRequest{ProjectID: proj.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Behind)
	assert.Equal(t, 1, resp.Ahead)
	require.Len(t, resp.Suggestions, 2)

	realloc := resp.Suggestions[0]
	assert.Equal(t, domain.SuggestReallocate, realloc.Type)
	assert.Equal(t, "A", realloc.WBSCode)
	assert.Equal(t, "C", realloc.FromWBS)
	assert.Equal(t, "A", realloc.ToWBS)
	assert.Equal(t, 50, realloc.ImpactScore)
	assert.Equal(t, 0.5, realloc.CurrentSPI)

	assert.Equal(t, domain.SuggestExtendShift, resp.Suggestions[1].Type)
	assert.Equal(t, 40, resp.Suggestions[1].ImpactScore)
}

func TestOptimizerService_Thresholds(t *testing.T) {
	ctx := context.Background()
	repos := memRepos(testutil.NewMemStore())
	proj := seedProject(t, repos)
	it := seedItem(t, repos, proj.ID, "A", testutil.WithQty(100))
	seedCell(t, repos, it.ID, "2025-03-01", 3, 80)

	lenient := scheduler.DefaultThresholds()
	lenient.BehindSPI = 0.75
	resp, err := NewOptimizerService(repos.Projects, repos.WBSItems, repos.Allocations, lenient).
		Optimize(ctx, app.OptimizeRequest{ProjectID: proj.ID})
	require.NoError(t, err)
	assert.Zero(t, resp.Behind, "0.8 is not behind under a 0.75 threshold")
	assert.Empty(t, resp.Suggestions)
}

func TestOptimizerService_UnknownProject(t *testing.T) {
	repos := memRepos(testutil.NewMemStore())
	svc := NewOptimizerService(repos.Projects, repos.WBSItems, repos.Allocations, scheduler.DefaultThresholds())
	_, err := svc.Optimize(context.Background(), app.OptimizeRequest{ProjectID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
