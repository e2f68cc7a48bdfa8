package service

import (
	"context"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
	// Resolve accepts either an id or a project code.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type WBSService interface {
	app.ImportWBSUseCase
	Create(ctx context.Context, w *domain.WBSItem) error
	GetByID(ctx context.Context, id string) (*domain.WBSItem, error)
	GetByCode(ctx context.Context, projectID, code string) (*domain.WBSItem, error)
	List(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	Update(ctx context.Context, w *domain.WBSItem) error
	// CheckHierarchy reports structural problems without failing.
	CheckHierarchy(ctx context.Context, projectID string) ([]error, error)
}

type AllocationService interface {
	BatchUpdate(ctx context.Context, projectID string, updates []app.CellUpdate, source domain.AllocationSource) (*app.BatchResult, error)
	ApplyChatActions(ctx context.Context, projectID string, actions []app.ChatAction) (*app.BatchResult, error)
}

type MatrixService interface {
	app.MatrixUseCase
}

type BaselineService interface {
	app.CreateBaselineUseCase
	// Rebaseline is Create under the name callers use for replacing a plan.
	Rebaseline(ctx context.Context, req app.CreateBaselineRequest) (*domain.Baseline, error)
	List(ctx context.Context, projectID string) ([]*domain.Baseline, error)
	Get(ctx context.Context, projectID string, version int) (*domain.Baseline, error)
	// ActivePlan maps item id to the active baseline's daily plan. It is
	// empty, not nil, when the project has no active baseline.
	ActivePlan(ctx context.Context, projectID string) (map[string]map[string]float64, error)
	Compare(ctx context.Context, projectID string, version int) (*app.BaselineComparison, error)
}

type ForecastService interface {
	app.ForecastUseCase
}

type OptimizerService interface {
	app.OptimizeUseCase
}

type DigestService interface {
	app.DigestUseCase
}
