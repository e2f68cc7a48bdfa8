package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/scheduler"
)

type optimizerService struct {
	projects    repository.ProjectRepo
	items       repository.WBSItemRepo
	allocations repository.AllocationRepo
	thresholds  scheduler.Thresholds
	observer    UseCaseObserver
}

func NewOptimizerService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	allocations repository.AllocationRepo,
	thresholds scheduler.Thresholds,
	observers ...UseCaseObserver,
) OptimizerService {
	return &optimizerService{
		projects:    projects,
		items:       items,
		allocations: allocations,
		thresholds:  thresholds,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *optimizerService) Optimize(ctx context.Context, req app.OptimizeRequest) (resp *app.OptimizeResponse, err error) {
	fields := map[string]any{"project_id": req.ProjectID}
	defer observe(ctx, s.observer, "optimize", fields, &err)()

	if _, err = s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading wbs items: %w", err)
	}
	allocs, err := s.allocations.ListByProject(ctx, req.ProjectID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}
	history := historyByItem(allocs)

	leaves := leafItems(items)
	input := make([]scheduler.OptimizeItem, 0, len(leaves))
	for _, it := range leaves {
		input = append(input, scheduler.OptimizeItem{
			WBSItemID: it.ID,
			Code:      it.Code,
			Name:      it.Name,
			Qty:       it.Qty,
			History:   history[it.ID],
		})
	}

	resp = &app.OptimizeResponse{ProjectID: req.ProjectID, GeneratedAt: time.Now().UTC()}
	for _, st := range scheduler.Standings(input) {
		if st.PlannedQty <= 0 {
			continue
		}
		switch {
		case st.SPI < s.thresholds.BehindSPI:
			resp.Behind++
		case st.SPI > s.thresholds.AheadSPI:
			resp.Ahead++
		}
	}
	for _, sg := range scheduler.Optimize(input, s.thresholds) {
		resp.Suggestions = append(resp.Suggestions, app.Suggestion(sg))
	}

	fields["suggestions"] = len(resp.Suggestions)
	return resp, nil
}
