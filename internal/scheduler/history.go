package scheduler

import (
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
)

// DayActual is one reported day for an item.
type DayActual struct {
	Date     time.Time
	Manpower float64
	QtyDone  float64
}

// Totals aggregates an item's full history.
type Totals struct {
	QtyDone     float64
	Manday      float64
	WorkingDays int
}

// Summarize sums quantity and mandays and counts days with nonzero manpower.
func Summarize(history []DayActual) Totals {
	var t Totals
	for _, d := range history {
		t.QtyDone += d.QtyDone
		t.Manday += d.Manpower
		if d.Manpower > 0 {
			t.WorkingDays++
		}
	}
	return t
}

// AvgRecentManpower averages nonzero manpower over days on or after
// today-windowDays. With no such day it falls back to the all-time mean of
// nonzero days, and to 0 when the item was never staffed.
func AvgRecentManpower(history []DayActual, today time.Time, windowDays int) float64 {
	cutoff := domain.Today(today).AddDate(0, 0, -windowDays)
	var recent, all []float64
	for _, d := range history {
		if d.Manpower <= 0 {
			continue
		}
		all = append(all, d.Manpower)
		if !domain.Today(d.Date).Before(cutoff) {
			recent = append(recent, d.Manpower)
		}
	}
	if len(recent) > 0 {
		return mean(recent)
	}
	return mean(all)
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var s float64
	for _, v := range vs {
		s += v
	}
	return s / float64(len(vs))
}

// PlanSnapshot is the frozen effort distribution derived from actuals.
type PlanSnapshot struct {
	DailyPlan      map[string]float64
	TotalManday    float64
	ManpowerPerDay float64
	StartDate      *time.Time
	EndDate        *time.Time
}

// BuildPlanSnapshot turns an item's actuals into a baseline plan using only
// days with nonzero manpower. ok is false when there are none.
func BuildPlanSnapshot(history []DayActual) (PlanSnapshot, bool) {
	snap := PlanSnapshot{DailyPlan: map[string]float64{}}
	var days []float64
	for _, d := range history {
		if d.Manpower <= 0 {
			continue
		}
		date := domain.Today(d.Date)
		snap.DailyPlan[domain.FormatDate(date)] = d.Manpower
		snap.TotalManday += d.Manpower
		days = append(days, d.Manpower)
		if snap.StartDate == nil || date.Before(*snap.StartDate) {
			start := date
			snap.StartDate = &start
		}
		if snap.EndDate == nil || date.After(*snap.EndDate) {
			end := date
			snap.EndDate = &end
		}
	}
	if len(days) == 0 {
		return PlanSnapshot{}, false
	}
	snap.TotalManday = metrics.Round2(snap.TotalManday)
	snap.ManpowerPerDay = metrics.Mean(days)
	return snap, true
}
