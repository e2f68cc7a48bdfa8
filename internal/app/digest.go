package app

import "time"

type DigestRequest struct {
	ProjectID string
	// Date defaults to today.
	Date *time.Time
}

type DigestKPI struct {
	TotalWorkers    float64
	ActiveItems     int
	QtyToday        float64
	OverallProgress float64
	WorkerTrend     float64
	QtyTrend        float64
}

type DigestHighlight struct {
	WBSCode  string
	WBSName  string
	QtyToday float64
	Workers  float64
}

type DigestConcern struct {
	WBSCode string
	WBSName string
	Issue   string
	Workers float64
}

type DigestResponse struct {
	ProjectID   string
	Date        string
	Summary     string
	KPI         DigestKPI
	Highlights  []DigestHighlight
	Concerns    []DigestConcern
	GeneratedAt time.Time
}
