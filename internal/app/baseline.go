package app

import "github.com/alexanderramin/sitepace/internal/domain"

type CreateBaselineRequest struct {
	ProjectID string
	Name      string
	Notes     string
}

// BaselineItemComparison sets an item's frozen plan against its actuals.
type BaselineItemComparison struct {
	WBSItemID     string
	WBSCode       string
	WBSName       string
	PlannedManday float64
	ActualManday  float64
	Variance      float64
	// SPI is actual over planned mandays, 0 when the item had no plan.
	SPI float64
}

type BaselineComparison struct {
	Baseline      *domain.Baseline
	Items         []BaselineItemComparison
	PlannedManday float64
	ActualManday  float64
	Variance      float64
}
