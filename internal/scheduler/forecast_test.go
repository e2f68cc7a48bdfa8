package scheduler

import (
	"testing"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
	"github.com/stretchr/testify/assert"
)

var today = day(2025, 3, 15)

func baseInput(qty float64, history ...DayActual) ForecastInput {
	return ForecastInput{Today: today, Qty: qty, History: history, WindowDays: 14, FallbackDays: 90}
}

func TestProjectItem_TwoDayScenario(t *testing.T) {
	f := ProjectItem(baseInput(10,
		DayActual{Date: day(2025, 3, 10), Manpower: 5, QtyDone: 2},
		DayActual{Date: day(2025, 3, 11), Manpower: 5, QtyDone: 3},
	))

	assert.Equal(t, 5.0, f.QtyDone)
	assert.Equal(t, 10.0, f.Manday)
	assert.Equal(t, 2, f.WorkingDays)
	assert.Equal(t, 0.5, f.Productivity)
	assert.Equal(t, 50.0, f.ProgressPct)
	assert.Equal(t, 5.0, f.Remaining)
	assert.Equal(t, 5.0, f.AvgRecentManpower)
	// ceil(5 / (0.5*5)) = 2
	assert.Equal(t, 2, f.EstDays)
	assert.Equal(t, day(2025, 3, 17), f.PredictedEnd)
	assert.Equal(t, 20.0, f.PredictedTotalManday)
	assert.Equal(t, domain.RiskLow, f.Risk.Level)
}

func TestProjectItem_Complete(t *testing.T) {
	f := ProjectItem(baseInput(100,
		DayActual{Date: day(2025, 3, 1), Manpower: 4, QtyDone: 60},
		DayActual{Date: day(2025, 3, 2), Manpower: 4, QtyDone: 40},
	))
	assert.Equal(t, 100.0, f.ProgressPct)
	assert.Equal(t, 0.0, f.Remaining)
	assert.Equal(t, 0, f.EstDays)
	assert.Equal(t, today, f.PredictedEnd)
	assert.Equal(t, 8.0, f.PredictedTotalManday)
	assert.Equal(t, domain.RiskLow, f.Risk.Level)
}

func TestProjectItem_NoHistoryUsesProjectEnd(t *testing.T) {
	in := baseInput(50)
	end := day(2025, 6, 30)
	in.ProjectEnd = &end

	f := ProjectItem(in)
	assert.False(t, f.Estimable())
	assert.Equal(t, metrics.Inestimable, f.EstDays)
	assert.Equal(t, end, f.PredictedEnd)
	assert.Equal(t, 0.0, f.PredictedTotalManday)
	assert.Equal(t, domain.RiskHigh, f.Risk.Level)
	assert.Equal(t, RecommendInsufficientData, f.Risk.Recommendation)
}

func TestProjectItem_NoHistoryNoEndUsesFallbackHorizon(t *testing.T) {
	f := ProjectItem(baseInput(50))
	assert.Equal(t, day(2025, 6, 13), f.PredictedEnd)
	assert.Equal(t, domain.RiskHigh, f.Risk.Level)
}

func TestProjectItem_StaffedWithoutOutputIsInestimable(t *testing.T) {
	f := ProjectItem(baseInput(50, DayActual{Date: day(2025, 3, 14), Manpower: 6}))
	assert.Equal(t, metrics.Inestimable, f.EstDays)
	assert.Equal(t, 6.0, f.PredictedTotalManday, "no additive term when inestimable")
}

func TestProjectItem_OverrunIsHigh(t *testing.T) {
	in := baseInput(10,
		DayActual{Date: day(2025, 3, 10), Manpower: 5, QtyDone: 2},
		DayActual{Date: day(2025, 3, 11), Manpower: 5, QtyDone: 3},
	)
	end := day(2025, 3, 16)
	in.ProjectEnd = &end

	f := ProjectItem(in)
	assert.Equal(t, domain.RiskHigh, f.Risk.Level)
	assert.Equal(t, 1, f.Risk.DaysLate)
	assert.Equal(t, "1 days past planned end", f.Risk.Recommendation)
}

func TestProjectItem_SlowProgressIsMedium(t *testing.T) {
	var history []DayActual
	for i := 0; i < 6; i++ {
		history = append(history, DayActual{Date: day(2025, 3, 5+i), Manpower: 2, QtyDone: 1})
	}
	f := ProjectItem(baseInput(100, history...))
	assert.Equal(t, 6.0, f.ProgressPct)
	assert.Equal(t, 6, f.WorkingDays)
	assert.Equal(t, domain.RiskMedium, f.Risk.Level)
}

func TestAvgRecentManpower_WindowAndFallback(t *testing.T) {
	old := DayActual{Date: day(2025, 1, 10), Manpower: 10}
	edge := DayActual{Date: day(2025, 3, 1), Manpower: 2} // exactly today-14
	recent := DayActual{Date: day(2025, 3, 14), Manpower: 4}
	zero := DayActual{Date: day(2025, 3, 13), Manpower: 0}

	assert.Equal(t, 3.0, AvgRecentManpower([]DayActual{old, edge, recent, zero}, today, 14))
	assert.Equal(t, 10.0, AvgRecentManpower([]DayActual{old, zero}, today, 14), "falls back to all-time nonzero mean")
	assert.Equal(t, 0.0, AvgRecentManpower([]DayActual{zero}, today, 14))
	assert.Equal(t, 0.0, AvgRecentManpower(nil, today, 14))
}
