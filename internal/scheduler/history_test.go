package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlanSnapshot(t *testing.T) {
	snap, ok := BuildPlanSnapshot([]DayActual{
		{Date: day(2025, 2, 18), Manpower: 6, QtyDone: 3},
		{Date: day(2025, 2, 17), Manpower: 5, QtyDone: 2},
		{Date: day(2025, 2, 19), Manpower: 0, QtyDone: 1},
		{Date: day(2025, 2, 20), Manpower: 4},
	})
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"2025-02-17": 5, "2025-02-18": 6, "2025-02-20": 4}, snap.DailyPlan)
	assert.Equal(t, 15.0, snap.TotalManday)
	assert.Equal(t, 5.0, snap.ManpowerPerDay)
	assert.Equal(t, day(2025, 2, 17), *snap.StartDate)
	assert.Equal(t, day(2025, 2, 20), *snap.EndDate)
}

func TestBuildPlanSnapshot_NoStaffedDays(t *testing.T) {
	_, ok := BuildPlanSnapshot([]DayActual{{Date: day(2025, 2, 18), QtyDone: 3}})
	assert.False(t, ok)

	_, ok = BuildPlanSnapshot(nil)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	tot := Summarize([]DayActual{
		{Manpower: 3, QtyDone: 1.5},
		{Manpower: 0, QtyDone: 0.5},
		{Manpower: 2},
	})
	assert.Equal(t, 2.0, tot.QtyDone)
	assert.Equal(t, 5.0, tot.Manday)
	assert.Equal(t, 2, tot.WorkingDays)
}
