package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
	"github.com/alexanderramin/sitepace/internal/repository"
)

const (
	digestListLimit  = 5
	concernNoQtyText = "workers assigned but no quantity recorded"
)

type digestService struct {
	projects    repository.ProjectRepo
	items       repository.WBSItemRepo
	allocations repository.AllocationRepo
	observer    UseCaseObserver
}

func NewDigestService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	allocations repository.AllocationRepo,
	observers ...UseCaseObserver,
) DigestService {
	return &digestService{
		projects:    projects,
		items:       items,
		allocations: allocations,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Digest summarizes one day's activity against the day before. Overall
// progress counts everything recorded up to and including that day.
func (s *digestService) Digest(ctx context.Context, req app.DigestRequest) (resp *app.DigestResponse, err error) {
	fields := map[string]any{"project_id": req.ProjectID}
	defer observe(ctx, s.observer, "daily-digest", fields, &err)()

	if _, err = s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	day := resolveNow(req.Date)
	prev := day.AddDate(0, 0, -1)

	items, err := s.items.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading wbs items: %w", err)
	}
	upToDay, err := s.allocations.ListByProject(ctx, req.ProjectID, nil, &day)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}

	byID := make(map[string]*domain.WBSItem, len(items))
	var totalQty float64
	for _, it := range items {
		byID[it.ID] = it
		if !it.IsSummary {
			totalQty += it.Qty
		}
	}

	var cumulative float64
	var today, yesterday []*domain.DailyAllocation
	for _, a := range upToDay {
		cumulative += a.QtyDone
		switch {
		case a.Date.Equal(day):
			today = append(today, a)
		case a.Date.Equal(prev):
			yesterday = append(yesterday, a)
		}
	}

	var kpi app.DigestKPI
	var prevWorkers, prevQty float64
	for _, a := range today {
		kpi.TotalWorkers += a.ActualManpower
		kpi.QtyToday += a.QtyDone
		if a.ActualManpower > 0 {
			kpi.ActiveItems++
		}
	}
	for _, a := range yesterday {
		prevWorkers += a.ActualManpower
		prevQty += a.QtyDone
	}
	kpi.WorkerTrend = metrics.Round1(kpi.TotalWorkers - prevWorkers)
	kpi.QtyTrend = metrics.Round1(kpi.QtyToday - prevQty)
	kpi.TotalWorkers = metrics.Round1(kpi.TotalWorkers)
	kpi.QtyToday = metrics.Round1(kpi.QtyToday)
	if totalQty > 0 {
		kpi.OverallProgress = metrics.Round1(math.Min(cumulative/totalQty*100, 100))
	}

	resp = &app.DigestResponse{
		ProjectID:   req.ProjectID,
		Date:        domain.FormatDate(day),
		KPI:         kpi,
		GeneratedAt: time.Now().UTC(),
	}

	// One row per item and date, so today's rows are already per item.
	sort.SliceStable(today, func(i, j int) bool {
		if today[i].QtyDone != today[j].QtyDone {
			return today[i].QtyDone > today[j].QtyDone
		}
		return codeOf(byID, today[i].WBSItemID) < codeOf(byID, today[j].WBSItemID)
	})
	for _, a := range today {
		it := byID[a.WBSItemID]
		switch {
		case a.QtyDone > 0 && len(resp.Highlights) < digestListLimit:
			resp.Highlights = append(resp.Highlights, app.DigestHighlight{
				WBSCode:  it.Code,
				WBSName:  it.Name,
				QtyToday: metrics.Round1(a.QtyDone),
				Workers:  a.ActualManpower,
			})
		case a.QtyDone == 0 && a.ActualManpower > 0 && len(resp.Concerns) < digestListLimit:
			resp.Concerns = append(resp.Concerns, app.DigestConcern{
				WBSCode: it.Code,
				WBSName: it.Name,
				Issue:   concernNoQtyText,
				Workers: a.ActualManpower,
			})
		}
	}

	resp.Summary = digestNarrative(resp.Date, kpi)
	fields["active_items"] = kpi.ActiveItems
	return resp, nil
}

func codeOf(byID map[string]*domain.WBSItem, id string) string {
	if it, ok := byID[id]; ok {
		return it.Code
	}
	return id
}

func digestNarrative(date string, k app.DigestKPI) string {
	return fmt.Sprintf("On %s, %.0f workers (%s) worked on %d items. Output %.1f units (%s). Overall progress %.1f%%.",
		date, k.TotalWorkers, signed(k.WorkerTrend, 0), k.ActiveItems, k.QtyToday, signed(k.QtyTrend, 1), k.OverallProgress)
}

// signed formats v with a leading + when positive.
func signed(v float64, places int) string {
	s := fmt.Sprintf("%.*f", places, v)
	if v > 0 {
		return "+" + s
	}
	return s
}
