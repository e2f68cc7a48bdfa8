package scheduler

import (
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
)

type ForecastInput struct {
	Today      time.Time
	ProjectEnd *time.Time
	Qty        float64
	History    []DayActual
	// WindowDays is the recent-manpower window, FallbackDays the horizon
	// used when no projection is possible and the project has no end date.
	WindowDays   int
	FallbackDays int
}

type ItemForecast struct {
	Totals
	Remaining         float64
	ProgressPct       float64
	Productivity      float64
	AvgRecentManpower float64
	// EstDays is metrics.Inestimable when no projection is possible.
	EstDays              int
	PredictedEnd         time.Time
	PredictedTotalManday float64
	Risk                 RiskResult
}

// Estimable reports whether the projection rests on observed productivity.
func (f ItemForecast) Estimable() bool {
	return f.EstDays < metrics.Inestimable
}

// ProjectItem projects one item's completion from its history.
func ProjectItem(in ForecastInput) ItemForecast {
	today := domain.Today(in.Today)
	totals := Summarize(in.History)

	f := ItemForecast{
		Totals:       totals,
		Remaining:    metrics.RemainingQty(in.Qty, totals.QtyDone),
		ProgressPct:  metrics.ProgressPct(in.Qty, totals.QtyDone),
		Productivity: metrics.ProductivityRate(totals.QtyDone, totals.Manday),
	}
	f.AvgRecentManpower = AvgRecentManpower(in.History, today, in.WindowDays)

	if f.Remaining <= 0 {
		// Nothing left: finished today regardless of rate data.
		f.EstDays = 0
	} else {
		f.EstDays = metrics.RemainingDays(f.Remaining, f.Productivity, f.AvgRecentManpower)
	}

	switch {
	case !f.Estimable() && in.ProjectEnd != nil:
		f.PredictedEnd = domain.Today(*in.ProjectEnd)
	case !f.Estimable():
		f.PredictedEnd = today.AddDate(0, 0, in.FallbackDays)
	default:
		f.PredictedEnd = today.AddDate(0, 0, f.EstDays)
	}

	extra := 0.0
	if f.Estimable() {
		extra = f.AvgRecentManpower * float64(f.EstDays)
	}
	f.PredictedTotalManday = metrics.Round1(totals.Manday + extra)
	f.AvgRecentManpower = metrics.Round2(f.AvgRecentManpower)

	f.Risk = ClassifyRisk(RiskInput{
		Today:        today,
		ProjectEnd:   in.ProjectEnd,
		EstDays:      f.EstDays,
		PredictedEnd: f.PredictedEnd,
		ProgressPct:  f.ProgressPct,
		WorkingDays:  totals.WorkingDays,
	})
	return f
}
