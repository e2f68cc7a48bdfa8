package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/scheduler"
)

type matrixService struct {
	projects    repository.ProjectRepo
	items       repository.WBSItemRepo
	allocations repository.AllocationRepo
	baselines   repository.BaselineRepo
	observer    UseCaseObserver
}

func NewMatrixService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	allocations repository.AllocationRepo,
	baselines repository.BaselineRepo,
	observers ...UseCaseObserver,
) MatrixService {
	return &matrixService{
		projects:    projects,
		items:       items,
		allocations: allocations,
		baselines:   baselines,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *matrixService) DailyMatrix(ctx context.Context, req app.MatrixRequest) (resp *app.MatrixResponse, err error) {
	fields := map[string]any{"project_id": req.ProjectID}
	defer observe(ctx, s.observer, "daily-matrix", fields, &err)()

	if _, err = s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	from, to := domain.Today(req.From), domain.Today(req.To)
	if from.After(to) {
		return nil, domain.Invalid(domain.CodeDateInvalid, "from %s is after to %s", domain.FormatDate(from), domain.FormatDate(to))
	}
	today := resolveNow(req.Now)

	items, err := s.items.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading wbs items: %w", err)
	}
	allTime, err := s.allocations.ListByProject(ctx, req.ProjectID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}
	inRange, err := s.allocations.ListByProject(ctx, req.ProjectID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("loading allocations in range: %w", err)
	}
	plan, err := activePlan(ctx, s.baselines, req.ProjectID)
	if err != nil {
		return nil, err
	}

	history := historyByItem(allTime)
	cells := make(map[string]map[string]*domain.DailyAllocation, len(items))
	for _, a := range inRange {
		if cells[a.WBSItemID] == nil {
			cells[a.WBSItemID] = map[string]*domain.DailyAllocation{}
		}
		cells[a.WBSItemID][domain.FormatDate(a.Date)] = a
	}

	dates := domain.DateRange(from, to)
	resp = &app.MatrixResponse{
		Items:     make([]app.WBSProgress, 0, len(items)),
		DateRange: make([]string, 0, len(dates)),
		Matrix:    make(map[string]map[string]app.Cell, len(items)),
		Totals:    make(map[string]app.DayTotal, len(dates)),
	}
	for _, d := range dates {
		resp.DateRange = append(resp.DateRange, domain.FormatDate(d))
	}

	for _, it := range items {
		resp.Items = append(resp.Items, progressRow(it, history[it.ID]))

		row := make(map[string]app.Cell, len(dates))
		for i, d := range dates {
			key := resp.DateRange[i]
			cell := app.Cell{IsFuture: d.After(today)}
			if a := cells[it.ID][key]; a != nil {
				cell.Actual = a.ActualManpower
				cell.QtyDone = a.QtyDone
				cell.Planned = a.PlannedManpower
			}
			// The active baseline wins; the row's own planned value is a
			// legacy fallback.
			if p := plan[it.ID][key]; p != 0 {
				cell.Planned = p
			}
			row[key] = cell

			t := resp.Totals[key]
			t.Planned = metrics.Round2(t.Planned + cell.Planned)
			t.Actual = metrics.Round2(t.Actual + cell.Actual)
			resp.Totals[key] = t
		}
		resp.Matrix[it.ID] = row
	}

	fields["items"] = len(items)
	fields["days"] = len(dates)
	return resp, nil
}

// progressRow summarizes an item's all-time actuals.
func progressRow(it *domain.WBSItem, history []scheduler.DayActual) app.WBSProgress {
	t := scheduler.Summarize(history)
	return app.WBSProgress{
		WBSItemID:        it.ID,
		Code:             it.Code,
		Name:             it.Name,
		Unit:             it.Unit,
		Level:            it.Level,
		IsSummary:        it.IsSummary,
		Qty:              it.Qty,
		QtyDone:          metrics.Round3(t.QtyDone),
		Remaining:        metrics.RemainingQty(it.Qty, t.QtyDone),
		ProgressPct:      metrics.ProgressPct(it.Qty, t.QtyDone),
		TotalManday:      metrics.Round2(t.Manday),
		WorkingDays:      t.WorkingDays,
		ProductivityRate: metrics.ProductivityRate(t.QtyDone, t.Manday),
	}
}

// activePlan loads the active baseline's daily plans keyed by item id.
// The map is empty when the project has no active baseline.
func activePlan(ctx context.Context, baselines repository.BaselineRepo, projectID string) (map[string]map[string]float64, error) {
	plan := map[string]map[string]float64{}
	active, err := baselines.GetActive(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading active baseline: %w", err)
	}
	if active == nil {
		return plan, nil
	}
	snaps, err := baselines.ListSnapshots(ctx, active.ID)
	if err != nil {
		return nil, fmt.Errorf("loading baseline snapshots: %w", err)
	}
	for _, sn := range snaps {
		plan[sn.WBSItemID] = sn.DailyPlan
	}
	return plan, nil
}
