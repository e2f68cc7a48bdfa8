package scheduler

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(code string, qty, done, crew float64) OptimizeItem {
	return OptimizeItem{
		WBSItemID: "id-" + code,
		Code:      code,
		Name:      code + " work",
		Qty:       qty,
		History: []DayActual{
			{Date: day(2025, 3, 1), Manpower: crew, QtyDone: done},
		},
	}
}

func TestStandings(t *testing.T) {
	s := Standings([]OptimizeItem{item("A", 100, 50, 3), item("Z", 0, 5, 2)})
	require.Len(t, s, 2)
	assert.Equal(t, 0.5, s[0].SPI)
	assert.Equal(t, 3, s[0].CrewCount)
	assert.Equal(t, 0.0, s[1].SPI, "zero planned yields SPI 0")
}

func TestOptimize_ReallocateAndExtend(t *testing.T) {
	items := []OptimizeItem{
		item("A", 100, 50, 3),  // behind, SPI 0.5
		item("B", 100, 75, 2),  // behind, SPI 0.75
		item("C", 100, 120, 4), // ahead, SPI 1.2
		item("D", 100, 150, 1), // ahead but a single crew cannot move
		item("E", 0, 0, 0),     // no quantity, ignored
		item("F", 100, 100, 2), // on plan
	}

	got := Optimize(items, DefaultThresholds())
	require.Len(t, got, 3)

	assert.Equal(t, domain.SuggestReallocate, got[0].Type)
	assert.Equal(t, "A", got[0].WBSCode)
	assert.Equal(t, "C", got[0].FromWBS)
	assert.Equal(t, 50, got[0].ImpactScore)
	assert.Equal(t, 1, got[0].CrewDelta)
	assert.Contains(t, got[0].Description, "Move 1 crew from C")

	assert.Equal(t, domain.SuggestExtendShift, got[1].Type)
	assert.Equal(t, "A", got[1].WBSCode)
	assert.Equal(t, 40, got[1].ImpactScore)

	assert.Equal(t, domain.SuggestReallocate, got[2].Type)
	assert.Equal(t, "B", got[2].WBSCode)
	assert.Equal(t, 25, got[2].ImpactScore)
}

func TestOptimize_NoAheadItems(t *testing.T) {
	got := Optimize([]OptimizeItem{item("A", 100, 50, 3), item("B", 100, 75, 2)}, DefaultThresholds())
	require.Len(t, got, 1)
	assert.Equal(t, domain.SuggestExtendShift, got[0].Type)
}

func TestOptimize_CapsAtMaxSuggestions(t *testing.T) {
	var items []OptimizeItem
	for i := 0; i < 12; i++ {
		items = append(items, item(fmt.Sprintf("B%02d", i), 100, float64(10+i), 2))
	}
	items = append(items, item("AHEAD", 100, 200, 5))

	got := Optimize(items, DefaultThresholds())
	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].ImpactScore, got[i].ImpactScore)
	}
	// B00 has the lowest SPI so its reallocation leads.
	assert.Equal(t, "B00", got[0].WBSCode)
	assert.Equal(t, domain.SuggestReallocate, got[0].Type)
}

func TestOptimize_Empty(t *testing.T) {
	assert.Empty(t, Optimize(nil, DefaultThresholds()))
}
