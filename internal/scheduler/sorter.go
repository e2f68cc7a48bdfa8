package scheduler

import (
	"sort"

	"github.com/alexanderramin/sitepace/internal/domain"
)

// RiskPriority returns a sort priority (lower = more urgent).
func RiskPriority(r domain.RiskLevel) int {
	switch r {
	case domain.RiskHigh:
		return 0
	case domain.RiskMedium:
		return 1
	default:
		return 2
	}
}

// SortStandings returns a copy ordered by SPI, ascending when worstFirst,
// with wbs code as the tiebreak.
func SortStandings(in []ItemStanding, worstFirst bool) []ItemStanding {
	out := append([]ItemStanding(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SPI != b.SPI {
			if worstFirst {
				return a.SPI < b.SPI
			}
			return a.SPI > b.SPI
		}
		return a.Code < b.Code
	})
	return out
}

// SortSuggestions orders suggestions deterministically:
// 1. Impact score: higher first
// 2. Type: reallocate before extend_shift
// 3. Target wbs code: lexical ascending
// 4. Source wbs code: lexical ascending
func SortSuggestions(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if a.ImpactScore != b.ImpactScore {
			return a.ImpactScore > b.ImpactScore
		}
		if a.Type != b.Type {
			return a.Type == domain.SuggestReallocate
		}
		if a.WBSCode != b.WBSCode {
			return a.WBSCode < b.WBSCode
		}
		return a.FromWBS < b.FromWBS
	})
}
