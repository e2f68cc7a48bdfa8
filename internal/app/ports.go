package app

import (
	"context"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/importer"
)

type MatrixUseCase interface {
	DailyMatrix(ctx context.Context, req MatrixRequest) (*MatrixResponse, error)
}

type ForecastUseCase interface {
	Generate(ctx context.Context, req ForecastRequest) (*ForecastResponse, error)
}

type OptimizeUseCase interface {
	Optimize(ctx context.Context, req OptimizeRequest) (*OptimizeResponse, error)
}

type DigestUseCase interface {
	Digest(ctx context.Context, req DigestRequest) (*DigestResponse, error)
}

type CreateBaselineUseCase interface {
	Create(ctx context.Context, req CreateBaselineRequest) (*domain.Baseline, error)
}

type ImportResult struct {
	Imported int
	Errors   []ItemError
}

type ImportWBSUseCase interface {
	ImportFile(ctx context.Context, projectID, path string) (*ImportResult, error)
	Import(ctx context.Context, projectID string, file *importer.WBSFile) (*ImportResult, error)
}
