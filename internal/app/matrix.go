package app

import "time"

type MatrixRequest struct {
	ProjectID string
	From      time.Time
	To        time.Time
	// Now decides which dates are in the future. Defaults to the wall clock.
	Now *time.Time
}

type Cell struct {
	Planned  float64
	Actual   float64
	QtyDone  float64
	IsFuture bool
}

type DayTotal struct {
	Planned float64
	Actual  float64
}

type MatrixResponse struct {
	Items     []WBSProgress
	DateRange []string
	// Matrix is keyed by item id, then YYYY-MM-DD. Every item has a cell
	// for every date in DateRange.
	Matrix map[string]map[string]Cell
	Totals map[string]DayTotal
}
