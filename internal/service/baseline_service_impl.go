package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/retry"
	"github.com/alexanderramin/sitepace/internal/scheduler"
	"github.com/google/uuid"
)

const maxBaselineNameLen = 255

type baselineService struct {
	repos    repository.Repos
	uow      db.UnitOfWork
	bind     TxRepos
	policy   retry.Policy
	observer UseCaseObserver
}

// NewBaselineService wires baseline creation. repos serves reads outside a
// transaction; bind supplies the repositories used inside each attempt.
func NewBaselineService(
	repos repository.Repos,
	uow db.UnitOfWork,
	bind TxRepos,
	policy retry.Policy,
	observers ...UseCaseObserver,
) BaselineService {
	return &baselineService{
		repos:    repos,
		uow:      uow,
		bind:     bind,
		policy:   policy,
		observer: useCaseObserverOrNoop(observers),
	}
}

func isVersionConflict(err error) bool {
	return errors.Is(err, domain.ErrVersionConflict)
}

// Create snapshots current actuals into a new active baseline. Each attempt
// re-reads the next version in a fresh transaction; only version conflicts
// are retried.
func (s *baselineService) Create(ctx context.Context, req app.CreateBaselineRequest) (baseline *domain.Baseline, err error) {
	fields := map[string]any{"project_id": req.ProjectID}
	defer observe(ctx, s.observer, "create-baseline", fields, &err)()

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxBaselineNameLen {
		return nil, domain.Invalid(domain.CodeBaselineInvalid, "baseline name must be 1-%d characters", maxBaselineNameLen)
	}
	if _, err = s.repos.Projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	attempts, err := s.policy.Do(ctx, isVersionConflict, func(int) error {
		var attemptErr error
		baseline, attemptErr = s.createOnce(ctx, req.ProjectID, name, strings.TrimSpace(req.Notes))
		return attemptErr
	})
	fields["attempts"] = attempts
	if err != nil {
		if isVersionConflict(err) {
			return nil, domain.Conflict(domain.CodeVersionConflict, err,
				"could not allocate a baseline version after %d attempts", attempts)
		}
		return nil, err
	}
	fields["version"] = baseline.Version
	fields["snapshots"] = len(baseline.Snapshots)
	return baseline, nil
}

func (s *baselineService) createOnce(ctx context.Context, projectID, name, notes string) (*domain.Baseline, error) {
	var b *domain.Baseline
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := s.bind(tx)

		version, err := r.Baselines.NextVersion(ctx, projectID)
		if err != nil {
			return err
		}
		if err := r.Baselines.DeactivateAll(ctx, projectID); err != nil {
			return err
		}

		now := time.Now().UTC()
		b = &domain.Baseline{
			ID:         uuid.New().String(),
			ProjectID:  projectID,
			Version:    version,
			Name:       name,
			Notes:      notes,
			IsActive:   true,
			ApprovedAt: &now,
			CreatedAt:  now,
		}
		if err := r.Baselines.Create(ctx, b); err != nil {
			return err
		}

		items, err := r.WBSItems.ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("loading wbs items: %w", err)
		}
		allocs, err := r.Allocations.ListByProject(ctx, projectID, nil, nil)
		if err != nil {
			return fmt.Errorf("loading allocations: %w", err)
		}
		history := historyByItem(allocs)

		// Items never staffed get no snapshot row.
		for _, it := range items {
			plan, ok := scheduler.BuildPlanSnapshot(history[it.ID])
			if !ok {
				continue
			}
			snap := &domain.BaselineSnapshot{
				ID:             uuid.New().String(),
				BaselineID:     b.ID,
				WBSItemID:      it.ID,
				TotalManday:    plan.TotalManday,
				StartDate:      plan.StartDate,
				EndDate:        plan.EndDate,
				ManpowerPerDay: plan.ManpowerPerDay,
				DailyPlan:      plan.DailyPlan,
			}
			if err := r.Baselines.CreateSnapshot(ctx, snap); err != nil {
				return err
			}
			b.Snapshots = append(b.Snapshots, snap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *baselineService) Rebaseline(ctx context.Context, req app.CreateBaselineRequest) (*domain.Baseline, error) {
	return s.Create(ctx, req)
}

func (s *baselineService) List(ctx context.Context, projectID string) ([]*domain.Baseline, error) {
	if _, err := s.repos.Projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repos.Baselines.ListByProject(ctx, projectID)
}

func (s *baselineService) Get(ctx context.Context, projectID string, version int) (*domain.Baseline, error) {
	if _, err := s.repos.Projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	b, err := s.repos.Baselines.GetByVersion(ctx, projectID, version)
	if err != nil {
		return nil, err
	}
	if b.Snapshots, err = s.repos.Baselines.ListSnapshots(ctx, b.ID); err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}
	return b, nil
}

func (s *baselineService) ActivePlan(ctx context.Context, projectID string) (map[string]map[string]float64, error) {
	if _, err := s.repos.Projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return activePlan(ctx, s.repos.Baselines, projectID)
}

// Compare sets each item's frozen manday plan against mandays spent so far.
// Items added after the baseline appear with a zero plan.
func (s *baselineService) Compare(ctx context.Context, projectID string, version int) (*app.BaselineComparison, error) {
	b, err := s.Get(ctx, projectID, version)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.WBSItems.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading wbs items: %w", err)
	}
	allocs, err := s.repos.Allocations.ListByProject(ctx, projectID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}

	planned := make(map[string]float64, len(b.Snapshots))
	for _, sn := range b.Snapshots {
		planned[sn.WBSItemID] = sn.TotalManday
	}
	history := historyByItem(allocs)

	cmp := &app.BaselineComparison{Baseline: b}
	for _, it := range items {
		p, inPlan := planned[it.ID]
		actual := scheduler.Summarize(history[it.ID]).Manday
		if !inPlan && actual == 0 {
			continue
		}
		cmp.Items = append(cmp.Items, app.BaselineItemComparison{
			WBSItemID:     it.ID,
			WBSCode:       it.Code,
			WBSName:       it.Name,
			PlannedManday: p,
			ActualManday:  metrics.Round2(actual),
			Variance:      metrics.Variance(actual, p),
			SPI:           metrics.SPI(p, actual),
		})
		cmp.PlannedManday += p
		cmp.ActualManday += actual
	}
	cmp.PlannedManday = metrics.Round2(cmp.PlannedManday)
	cmp.ActualManday = metrics.Round2(cmp.ActualManday)
	cmp.Variance = metrics.Variance(cmp.ActualManday, cmp.PlannedManday)
	return cmp, nil
}
