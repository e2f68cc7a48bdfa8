// Package metrics holds the pure progress and productivity formulas used by
// the matrix, baseline and forecast computations. Every function is
// deterministic and rounds half away from zero at a fixed precision.
package metrics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Inestimable is the sentinel day count returned when no productivity or
// crew data exists to project remaining work.
const Inestimable = 999

func round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// ProductivityRate is quantity done per manday, 0 when no mandays were spent.
func ProductivityRate(qtyDone, manday float64) float64 {
	if manday <= 0 {
		return 0
	}
	return round(qtyDone/manday, 3)
}

// ProgressPct is the completion percentage capped at 100.
// A zero-quantity item counts as complete once anything was recorded.
func ProgressPct(qty, qtyDone float64) float64 {
	if qty <= 0 {
		if qtyDone > 0 {
			return 100
		}
		return 0
	}
	return round(math.Min(qtyDone/qty*100, 100), 1)
}

func RemainingQty(qty, qtyDone float64) float64 {
	return round(math.Max(qty-qtyDone, 0), 3)
}

// RemainingDays projects working days left at the given rate and crew size.
// It returns Inestimable when either rate or crew is non-positive, or when
// the projection reaches Inestimable days.
func RemainingDays(remaining, rate, manpower float64) int {
	if rate <= 0 || manpower <= 0 {
		return Inestimable
	}
	days := math.Ceil(remaining / (rate * manpower))
	if !(days < Inestimable) {
		return Inestimable
	}
	return int(days)
}

func Variance(actual, planned float64) float64 {
	return round(actual-planned, 2)
}

// SPI is the schedule performance index: actual over planned, 0 without a plan.
func SPI(planned, actual float64) float64 {
	if planned <= 0 {
		return 0
	}
	return round(actual/planned, 3)
}

// Item is the quantity pair consumed by WeightedProgress.
type Item struct {
	Qty     float64
	QtyDone float64
}

// WeightedProgress averages per-item completion weighted by quantity.
// Items with qty <= 0 are ignored; an empty or all-zero set yields 0.
func WeightedProgress(items []Item) float64 {
	var totalQty, weighted float64
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		totalQty += it.Qty
		weighted += math.Min(it.QtyDone/it.Qty, 1) * it.Qty
	}
	if totalQty == 0 {
		return 0
	}
	return round(weighted/totalQty*100, 1)
}

// EstimateCompletionDate adds the projected remaining days to from.
// ok is false when the projection is inestimable.
func EstimateCompletionDate(remaining, rate, manpower float64, from time.Time) (time.Time, bool) {
	if remaining <= 0 {
		return from, true
	}
	days := RemainingDays(remaining, rate, manpower)
	if days >= Inestimable {
		return time.Time{}, false
	}
	return from.AddDate(0, 0, days), true
}

// Mean returns the arithmetic mean rounded to 2 places.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return round(sum/float64(len(values)), 2)
}

// Round1 and Round2 expose the display precisions used by aggregates.
func Round1(v float64) float64 { return round(v, 1) }
func Round2(v float64) float64 { return round(v, 2) }
func Round3(v float64) float64 { return round(v, 3) }
