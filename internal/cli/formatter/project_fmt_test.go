package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFormatProjectList(t *testing.T) {
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	out := FormatProjectList([]*domain.Project{
		{ID: "12345678-aaaa", Code: "HSP-01", Name: "Hospital Annex", Status: domain.ProjectActive, EndDate: &end},
		{ID: "abcdef12-3456", Name: "Uncoded", Status: domain.ProjectPaused},
	})

	assert.Contains(t, out, "HSP-01")
	assert.Contains(t, out, "2026-12-31")
	assert.Contains(t, out, "abcdef12", "falls back to the id prefix without a code")
}

func TestWBSTree_NestsChildrenUnderParents(t *testing.T) {
	items := []*domain.WBSItem{
		{ID: "r", Code: "1", Name: "Structure", IsSummary: true},
		{ID: "a", ParentID: strPtr("r"), Code: "1.1", Name: "Columns", Qty: 40, Unit: "m3"},
		{ID: "o", ParentID: strPtr("gone"), Code: "9", Name: "Orphan", Qty: 1, Unit: "ls"},
		{ID: "b", ParentID: strPtr("r"), Code: "1.2", Name: "Slabs", Qty: 300, Unit: "m2"},
	}

	tree := WBSTree(items)
	require.Len(t, tree, 4)
	assert.Equal(t, "1  Structure", tree[0].Title)
	assert.Equal(t, 0, tree[0].Level)
	assert.Empty(t, tree[0].Detail, "summary items carry no quantity")
	assert.Equal(t, "1.1  Columns", tree[1].Title)
	assert.Equal(t, 1, tree[1].Level)
	assert.False(t, tree[1].IsLast)
	assert.Equal(t, "1.2  Slabs", tree[2].Title)
	assert.True(t, tree[2].IsLast)
	assert.Equal(t, "300 m2", tree[2].Detail)
	assert.Equal(t, "9  Orphan", tree[3].Title, "orphans surface as roots")

	out := RenderTree(tree)
	assert.Contains(t, out, "├─ ")
	assert.Contains(t, out, "└─ ")
}

func TestFormatMatrix(t *testing.T) {
	resp := &app.MatrixResponse{
		Items: []app.WBSProgress{
			{WBSItemID: "s", Code: "1", IsSummary: true},
			{WBSItemID: "a", Code: "A", Level: 1, Qty: 100, QtyDone: 10, ProgressPct: 10},
		},
		DateRange: []string{"2026-02-17", "2026-02-18"},
		Matrix: map[string]map[string]app.Cell{
			"s": {"2026-02-17": {}, "2026-02-18": {}},
			"a": {"2026-02-17": {Planned: 5, Actual: 6}, "2026-02-18": {IsFuture: true}},
		},
		Totals: map[string]app.DayTotal{"2026-02-17": {Planned: 5, Actual: 6}},
	}

	out := FormatMatrix(resp)
	assert.Contains(t, out, "02-17")
	assert.Contains(t, out, "5/6")
	assert.Contains(t, out, "10/100")
	assert.Contains(t, out, "TOTAL")
	assert.Equal(t, 1, strings.Count(out, "  A"), "items are indented by level")
}

func TestFormatForecast(t *testing.T) {
	days := 2
	out := FormatForecast(&app.ForecastResponse{
		Forecasts: []app.ItemForecast{
			{WBSCode: "A", ProgressPct: 50, EstDays: &days, PredictedEndDate: time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), RiskLevel: domain.RiskLow, Recommendation: "on track"},
			{WBSCode: "B", RiskLevel: domain.RiskHigh, Recommendation: "insufficient data to forecast"},
		},
		Summary: app.ForecastSummary{AvgProgressPct: 25, HighRisk: 1},
	})
	assert.Contains(t, out, "2025-03-17")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "1 high")

	assert.Contains(t, FormatForecast(&app.ForecastResponse{}), "No work items")
}

func TestFormatBatchResult(t *testing.T) {
	out := FormatBatchResult(&app.BatchResult{
		UpdatedCount: 1,
		Errors:       []app.ItemError{{WBSCode: "B", Date: "2026-02-17", Code: domain.CodeNegativeValue, Error: "negative"}},
	})
	assert.Contains(t, out, "Updated 1 cell(s)")
	assert.Contains(t, out, "1 rejected")
	assert.Contains(t, out, domain.CodeNegativeValue)
}

func TestFormatOptimize(t *testing.T) {
	out := FormatOptimize(&app.OptimizeResponse{
		Behind: 1,
		Suggestions: []app.Suggestion{
			{Type: domain.SuggestReallocate, ImpactScore: 50, Description: "Move 1 crew from C to A"},
		},
	})
	assert.Contains(t, out, "reallocate")
	assert.Contains(t, out, "impact 50")
	assert.Contains(t, out, "Move 1 crew from C to A")

	assert.Contains(t, FormatOptimize(&app.OptimizeResponse{}), "no crew changes")
}

func TestFormatDigest(t *testing.T) {
	out := FormatDigest(&app.DigestResponse{
		Date:       "2026-02-17",
		Summary:    "On 2026-02-17, 11 workers (+7) worked on 3 items.",
		KPI:        app.DigestKPI{TotalWorkers: 11, WorkerTrend: 7, QtyToday: 17, ActiveItems: 3, OverallProgress: 15.9},
		Highlights: []app.DigestHighlight{{WBSCode: "A", WBSName: "Columns", QtyToday: 12, Workers: 6}},
		Concerns:   []app.DigestConcern{{WBSCode: "B", Issue: "workers assigned but no quantity recorded", Workers: 3}},
	})
	assert.Contains(t, out, "+7")
	assert.Contains(t, out, "HIGHLIGHTS")
	assert.Contains(t, out, "CONCERNS")
	assert.Contains(t, out, "no quantity recorded")
}
