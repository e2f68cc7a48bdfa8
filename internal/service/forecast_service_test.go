package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/scheduler"
	"github.com/alexanderramin/sitepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForecastService(repos repository.Repos, settings ForecastSettings, observers ...UseCaseObserver) ForecastService {
	return NewForecastService(repos.Projects, repos.WBSItems, repos.Allocations, repos.Forecasts, settings, observers...)
}

func TestForecastService_Generate(t *testing.T) {
	ctx := context.Background()
	repos := memRepos(testutil.NewMemStore())
	proj := seedProject(t, repos)
	sum := seedItem(t, repos, proj.ID, "1", testutil.AsSummary())
	a := seedItem(t, repos, proj.ID, "1.1", testutil.WithQty(10), testutil.WithParent(sum.ID), testutil.WithSortOrder(1))
	seedItem(t, repos, proj.ID, "1.2", testutil.WithQty(50), testutil.WithParent(sum.ID), testutil.WithSortOrder(2))
	seedCell(t, repos, a.ID, "2025-03-10", 5, 2)
	seedCell(t, repos, a.ID, "2025-03-11", 5, 3)

	resp, err := newForecastService(repos, DefaultForecastSettings()).Generate(ctx, app.ForecastRequest{
		ProjectID: proj.ID,
		Now:       ptrTime(testutil.MustDate("2025-03-15")),
	})
	require.NoError(t, err)
	require.Len(t, resp.Forecasts, 2, "summary items are not forecast")

	fb := resp.Forecasts[0]
	assert.Equal(t, "1.2", fb.WBSCode, "high risk sorts first")
	assert.Nil(t, fb.EstDays, "no history cannot be estimated")
	assert.Equal(t, testutil.MustDate("2025-06-13"), fb.PredictedEndDate)
	assert.Equal(t, domain.RiskHigh, fb.RiskLevel)
	assert.Equal(t, scheduler.RecommendInsufficientData, fb.Recommendation)

	fa := resp.Forecasts[1]
	assert.Equal(t, "1.1", fa.WBSCode)
	assert.Equal(t, 5.0, fa.QtyDone)
	assert.Equal(t, 50.0, fa.ProgressPct)
	assert.Equal(t, 0.5, fa.Productivity)
	assert.Equal(t, 5.0, fa.AvgRecentManpower)
	require.NotNil(t, fa.EstDays)
	assert.Equal(t, 2, *fa.EstDays)
	assert.Equal(t, testutil.MustDate("2025-03-17"), fa.PredictedEndDate)
	assert.Equal(t, 20.0, fa.PredictedTotalManday)
	assert.Equal(t, domain.RiskLow, fa.RiskLevel)

	assert.Equal(t, 25.0, resp.Summary.AvgProgressPct)
	assert.Equal(t, 1, resp.Summary.HighRisk)
	assert.Zero(t, resp.Summary.MediumRisk)
	assert.Equal(t, "Overall progress 25.0%. 1 items at high risk, 0 at medium risk.", resp.Summary.Narrative)

	stored, err := repos.Forecasts.ListByProject(ctx, proj.ID, 0)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, f := range stored {
		assert.Equal(t, 0.7, f.Confidence)
		assert.Equal(t, resp.GeneratedAt, f.CreatedAt)
	}
}

func TestForecastService_UsesProjectEnd(t *testing.T) {
	ctx := context.Background()
	repos := memRepos(testutil.NewMemStore())
	end := testutil.MustDate("2025-03-16")
	proj := seedProject(t, repos, testutil.WithEndDate(end))
	a := seedItem(t, repos, proj.ID, "A", testutil.WithQty(10))
	seedCell(t, repos, a.ID, "2025-03-10", 5, 2)
	seedCell(t, repos, a.ID, "2025-03-11", 5, 3)

	resp, err := newForecastService(repos, DefaultForecastSettings()).Generate(ctx, app.ForecastRequest{
		ProjectID: proj.ID,
		Now:       ptrTime(testutil.MustDate("2025-03-15")),
	})
	require.NoError(t, err)
	require.Len(t, resp.Forecasts, 1)
	assert.Equal(t, domain.RiskHigh, resp.Forecasts[0].RiskLevel, "finishing after the project end is high risk")
	assert.Contains(t, resp.Forecasts[0].Recommendation, "1 days past planned end")
}

func TestForecastService_PersistDisabled(t *testing.T) {
	ctx := context.Background()
	repos := memRepos(testutil.NewMemStore())
	proj := seedProject(t, repos)
	seedItem(t, repos, proj.ID, "A", testutil.WithQty(10))

	settings := DefaultForecastSettings()
	settings.Persist = false
	_, err := newForecastService(repos, settings).Generate(ctx, app.ForecastRequest{ProjectID: proj.ID})
	require.NoError(t, err)

	stored, err := repos.Forecasts.ListByProject(ctx, proj.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

type failingForecasts struct{ repository.ForecastRepo }

func (failingForecasts) Create(context.Context, *domain.Forecast) error {
	return errors.New("forecasts table is read-only")
}

func TestForecastService_PersistFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	repos := memRepos(testutil.NewMemStore())
	proj := seedProject(t, repos)
	seedItem(t, repos, proj.ID, "A", testutil.WithQty(10))
	seedItem(t, repos, proj.ID, "B", testutil.WithQty(10))

	svc := NewForecastService(repos.Projects, repos.WBSItems, repos.Allocations,
		failingForecasts{repos.Forecasts}, DefaultForecastSettings(), obs)
	resp, err := svc.Generate(ctx, app.ForecastRequest{ProjectID: proj.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Forecasts, 2)

	events := obs.byName("persist-forecasts")
	require.Len(t, events, 1)
	assert.True(t, events[0].BestEffort)
	assert.ErrorContains(t, events[0].Err, "forecast for A")
	assert.ErrorContains(t, events[0].Err, "forecast for B")

	gen := obs.byName("generate-forecast")
	require.Len(t, gen, 1)
	assert.True(t, gen[0].Success)
}

func TestForecastService_UnknownProject(t *testing.T) {
	repos := memRepos(testutil.NewMemStore())
	_, err := newForecastService(repos, DefaultForecastSettings()).Generate(context.Background(), app.ForecastRequest{ProjectID: "ghost"})
	assert.Equal(t, domain.CodeProjectNotFound, domain.CodeOf(err))
}
