package app

import (
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
)

type ForecastRequest struct {
	ProjectID   string
	Now       *time.Time
}

type ItemForecast struct {
	WBSItemID         string
	WBSCode           string
	WBSName           string
	Qty               float64
	QtyDone           float64
	Remaining         float64
	ProgressPct       float64
	Productivity      float64
	AvgRecentManpower float64
	WorkingDays       int
	// EstDays is nil when the projection is inestimable.
	EstDays              *int
	PredictedEndDate     time.Time
	PredictedTotalManday float64
	RiskLevel            domain.RiskLevel
	Recommendation       string
}

type ForecastSummary struct {
	AvgProgressPct float64
	HighRisk       int
	MediumRisk     int
	Narrative      string
}

type ForecastResponse struct {
	ProjectID   string
	// Forecasts lists leaf items, high risk first.
	Forecasts   []ItemForecast
	Summary     ForecastSummary
	GeneratedAt time.Time
}

type OptimizeRequest struct {
	ProjectID   string
}

type Suggestion struct {
	Type        domain.SuggestionType
	WBSCode     string
	Description string
	ImpactScore int
	FromWBS     string
	ToWBS       string
	CrewDelta   int
	CurrentSPI  float64
	TargetSPI   float64
}

type OptimizeResponse struct {
	ProjectID   string
	Suggestions []Suggestion
	// Behind and Ahead count items outside the SPI thresholds.
	Behind      int
	Ahead       int
	GeneratedAt time.Time
}
