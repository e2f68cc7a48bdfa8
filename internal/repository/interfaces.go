package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type WBSItemRepo interface {
	Create(ctx context.Context, w *domain.WBSItem) error
	GetByID(ctx context.Context, id string) (*domain.WBSItem, error)
	GetByCode(ctx context.Context, projectID, code string) (*domain.WBSItem, error)
	// ListByProject returns items ordered by sort_order then wbs_code.
	ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	Update(ctx context.Context, w *domain.WBSItem) error
	// Upsert inserts or updates by (project_id, wbs_code) and sets w.ID to
	// the stored row's id.
	Upsert(ctx context.Context, w *domain.WBSItem) error
}

type AllocationRepo interface {
	// Upsert writes only the fields present on the patch.
	Upsert(ctx context.Context, p *domain.AllocationPatch) error
	ListByItem(ctx context.Context, wbsItemID string) ([]*domain.DailyAllocation, error)
	// ListByProject returns allocations of all the project's items. Nil
	// bounds are open; bounds are inclusive.
	ListByProject(ctx context.Context, projectID string, from, to *time.Time) ([]*domain.DailyAllocation, error)
}

type BaselineRepo interface {
	// NextVersion returns MAX(version)+1 for the project, or 1.
	NextVersion(ctx context.Context, projectID string) (int, error)
	DeactivateAll(ctx context.Context, projectID string) error
	// Create returns an error matching domain.ErrVersionConflict when the
	// version or active slot was taken concurrently.
	Create(ctx context.Context, b *domain.Baseline) error
	CreateSnapshot(ctx context.Context, s *domain.BaselineSnapshot) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Baseline, error)
	GetByVersion(ctx context.Context, projectID string, version int) (*domain.Baseline, error)
	// GetActive returns nil and no error when the project has no baseline.
	GetActive(ctx context.Context, projectID string) (*domain.Baseline, error)
	ListSnapshots(ctx context.Context, baselineID string) ([]*domain.BaselineSnapshot, error)
}

type ForecastRepo interface {
	Create(ctx context.Context, f *domain.Forecast) error
	ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.Forecast, error)
}

type ChatLogRepo interface {
	Create(ctx context.Context, l *domain.ChatActionLog) error
	ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.ChatActionLog, error)
}
