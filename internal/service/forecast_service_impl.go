package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/scheduler"
	"github.com/google/uuid"
)

// ForecastSettings tunes the projection window and persistence.
type ForecastSettings struct {
	WindowDays   int
	FallbackDays int
	// Confidence is stored with each persisted forecast row.
	Confidence float64
	Persist    bool
}

func DefaultForecastSettings() ForecastSettings {
	return ForecastSettings{WindowDays: 14, FallbackDays: 90, Confidence: 0.7, Persist: true}
}

type forecastService struct {
	projects    repository.ProjectRepo
	items       repository.WBSItemRepo
	allocations repository.AllocationRepo
	forecasts   repository.ForecastRepo
	settings    ForecastSettings
	observer    UseCaseObserver
}

func NewForecastService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	allocations repository.AllocationRepo,
	forecasts repository.ForecastRepo,
	settings ForecastSettings,
	observers ...UseCaseObserver,
) ForecastService {
	return &forecastService{
		projects:    projects,
		items:       items,
		allocations: allocations,
		forecasts:   forecasts,
		settings:    settings,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Generate projects every non-summary item and summarizes the project.
// Persisting the rows is a side effect whose failure never reaches the caller.
func (s *forecastService) Generate(ctx context.Context, req app.ForecastRequest) (resp *app.ForecastResponse, err error) {
	fields := map[string]any{"project_id": req.ProjectID}
	defer observe(ctx, s.observer, "generate-forecast", fields, &err)()

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	today := resolveNow(req.Now)

	items, err := s.items.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading wbs items: %w", err)
	}
	allocs, err := s.allocations.ListByProject(ctx, req.ProjectID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}
	history := historyByItem(allocs)

	resp = &app.ForecastResponse{ProjectID: project.ID, GeneratedAt: time.Now().UTC()}
	var progressSum float64
	for _, it := range leafItems(items) {
		f := scheduler.ProjectItem(scheduler.ForecastInput{
			Today:        today,
			ProjectEnd:   project.EndDate,
			Qty:          it.Qty,
			History:      history[it.ID],
			WindowDays:   s.settings.WindowDays,
			FallbackDays: s.settings.FallbackDays,
		})
		view := app.ItemForecast{
			WBSItemID:            it.ID,
			WBSCode:              it.Code,
			WBSName:              it.Name,
			Qty:                  it.Qty,
			QtyDone:              metrics.Round3(f.QtyDone),
			Remaining:            f.Remaining,
			ProgressPct:          f.ProgressPct,
			Productivity:         f.Productivity,
			AvgRecentManpower:    f.AvgRecentManpower,
			WorkingDays:          f.WorkingDays,
			PredictedEndDate:     f.PredictedEnd,
			PredictedTotalManday: f.PredictedTotalManday,
			RiskLevel:            f.Risk.Level,
			Recommendation:       f.Risk.Recommendation,
		}
		if f.Estimable() {
			days := f.EstDays
			view.EstDays = &days
		}
		resp.Forecasts = append(resp.Forecasts, view)

		progressSum += f.ProgressPct
		switch f.Risk.Level {
		case domain.RiskHigh:
			resp.Summary.HighRisk++
		case domain.RiskMedium:
			resp.Summary.MediumRisk++
		}
	}
	// Most urgent first; ties keep wbs order.
	sort.SliceStable(resp.Forecasts, func(i, j int) bool {
		return scheduler.RiskPriority(resp.Forecasts[i].RiskLevel) < scheduler.RiskPriority(resp.Forecasts[j].RiskLevel)
	})
	if n := len(resp.Forecasts); n > 0 {
		resp.Summary.AvgProgressPct = metrics.Round1(progressSum / float64(n))
	}
	resp.Summary.Narrative = fmt.Sprintf("Overall progress %.1f%%. %d items at high risk, %d at medium risk.",
		resp.Summary.AvgProgressPct, resp.Summary.HighRisk, resp.Summary.MediumRisk)

	fields["items"] = len(resp.Forecasts)
	fields["high_risk"] = resp.Summary.HighRisk
	if s.settings.Persist {
		bestEffort(ctx, s.observer, "persist-forecasts", map[string]any{"project_id": project.ID}, func(ctx context.Context) error {
			return s.persist(ctx, project.ID, resp)
		})
	}
	return resp, nil
}

// persist tries every row and joins the failures.
func (s *forecastService) persist(ctx context.Context, projectID string, resp *app.ForecastResponse) error {
	var errs []error
	for _, f := range resp.Forecasts {
		err := s.forecasts.Create(ctx, &domain.Forecast{
			ID:               uuid.New().String(),
			ProjectID:        projectID,
			WBSItemID:        f.WBSItemID,
			PredictedEndDate: f.PredictedEndDate,
			PredictedManday:  f.PredictedTotalManday,
			Confidence:       s.settings.Confidence,
			RiskLevel:        f.RiskLevel,
			Reasoning:        f.Recommendation,
			CreatedAt:        resp.GeneratedAt,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("forecast for %s: %w", f.WBSCode, err))
		}
	}
	return errors.Join(errs...)
}
