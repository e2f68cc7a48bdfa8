package domain

import (
	"time"
)

// Baseline is an immutable, versioned snapshot of planned effort. Versions
// start at 1 per project and are never reused; at most one is active.
type Baseline struct {
	ID         string
	ProjectID  string
	Version    int
	Name       string
	Notes      string
	IsActive   bool
	ApprovedAt *time.Time
	CreatedAt  time.Time
	Snapshots  []*BaselineSnapshot
}

// BaselineSnapshot freezes one item's effort distribution at baseline time.
// DailyPlan is keyed by YYYY-MM-DD.
type BaselineSnapshot struct {
	ID             string
	BaselineID     string
	WBSItemID      string
	TotalManday    float64
	StartDate      *time.Time
	EndDate        *time.Time
	ManpowerPerDay float64
	DailyPlan      map[string]float64
}

// Forecast is one persisted projection for an item.
type Forecast struct {
	ID               string
	ProjectID        string
	WBSItemID        string
	PredictedEndDate time.Time
	PredictedManday  float64
	Confidence       float64
	RiskLevel        RiskLevel
	Reasoning        string
	CreatedAt        time.Time
}
