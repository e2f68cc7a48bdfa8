package scheduler

import (
	"fmt"
	"math"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
)

type OptimizeItem struct {
	WBSItemID string
	Code      string
	Name      string
	Qty       float64
	History   []DayActual
}

type Thresholds struct {
	BehindSPI      float64
	AheadSPI       float64
	ExtendShiftSPI float64
	MaxSuggestions int
}

func DefaultThresholds() Thresholds {
	return Thresholds{BehindSPI: 0.85, AheadSPI: 1.1, ExtendShiftSPI: 0.7, MaxSuggestions: 10}
}

// ItemStanding is an item's schedule position by SPI.
type ItemStanding struct {
	WBSItemID  string
	Code       string
	Name       string
	PlannedQty float64
	ActualQty  float64
	SPI        float64
	// CrewCount is the largest daily crew ever reported.
	CrewCount int
}

type Suggestion struct {
	Type        domain.SuggestionType
	WBSCode     string
	Description string
	ImpactScore int
	FromWBS     string
	ToWBS       string
	CrewDelta   int
	CurrentSPI  float64
	TargetSPI   float64
}

// Standings computes SPI and peak crew per item, using item quantity as
// the planned value.
func Standings(items []OptimizeItem) []ItemStanding {
	out := make([]ItemStanding, 0, len(items))
	for _, it := range items {
		s := ItemStanding{WBSItemID: it.WBSItemID, Code: it.Code, Name: it.Name, PlannedQty: it.Qty}
		for _, d := range it.History {
			s.ActualQty += d.QtyDone
			if c := int(d.Manpower); c > s.CrewCount {
				s.CrewCount = c
			}
		}
		s.SPI = metrics.SPI(it.Qty, s.ActualQty)
		out = append(out, s)
	}
	return out
}

// Optimize ranks crew moves from ahead items to behind items plus extended
// shifts for items far behind, highest impact first.
func Optimize(items []OptimizeItem, th Thresholds) []Suggestion {
	var behind, ahead []ItemStanding
	for _, s := range Standings(items) {
		if s.PlannedQty <= 0 {
			continue
		}
		switch {
		case s.SPI < th.BehindSPI:
			behind = append(behind, s)
		case s.SPI > th.AheadSPI:
			ahead = append(ahead, s)
		}
	}

	worst := SortStandings(behind, true)
	best := SortStandings(ahead, false)
	if len(worst) > th.MaxSuggestions {
		worst = worst[:th.MaxSuggestions]
	}
	if len(best) > th.MaxSuggestions {
		best = best[:th.MaxSuggestions]
	}

	var out []Suggestion
	for _, b := range worst {
		for _, a := range best {
			if a.CrewCount <= 1 {
				continue
			}
			out = append(out, Suggestion{
				Type:    domain.SuggestReallocate,
				WBSCode: b.Code,
				Description: fmt.Sprintf("Move 1 crew from %s (%s, SPI=%.2f) to %s (%s, SPI=%.2f)",
					a.Code, a.Name, a.SPI, b.Code, b.Name, b.SPI),
				ImpactScore: int(math.Min((1-b.SPI)*100, 100)),
				FromWBS:     a.Code,
				ToWBS:       b.Code,
				CrewDelta:   1,
				CurrentSPI:  b.SPI,
				TargetSPI:   1,
			})
		}
	}

	for _, b := range behind {
		if b.SPI >= th.ExtendShiftSPI {
			continue
		}
		out = append(out, Suggestion{
			Type:    domain.SuggestExtendShift,
			WBSCode: b.Code,
			Description: fmt.Sprintf("Consider overtime or extended shifts for %s (%s). Current SPI=%.2f",
				b.Code, b.Name, b.SPI),
			ImpactScore: int(math.Min((1-b.SPI)*80, 95)),
			CurrentSPI:  b.SPI,
			TargetSPI:   1,
		})
	}

	SortSuggestions(out)
	if len(out) > th.MaxSuggestions {
		out = out[:th.MaxSuggestions]
	}
	return out
}
