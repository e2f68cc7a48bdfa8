package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// FormatBaselineList renders every baseline version, newest first.
func FormatBaselineList(baselines []*domain.Baseline) string {
	if len(baselines) == 0 {
		return Dim("No baselines yet. Create one with `sitepace baseline create`.")
	}
	rows := make([][]string, 0, len(baselines))
	for _, b := range baselines {
		active := ""
		if b.IsActive {
			active = StyleGreen.Render("● active")
		}
		rows = append(rows, []string{
			fmt.Sprintf("v%d", b.Version),
			Bold(b.Name),
			active,
			DateCell(b.ApprovedAt),
			Dim(b.Notes),
		})
	}
	return RenderBox("Baselines", RenderTable([]string{"VERSION", "NAME", "STATE", "APPROVED", "NOTES"}, rows))
}

// FormatBaseline renders one baseline with its snapshot rows. codes maps
// item ids to wbs codes; unknown ids fall back to a short id.
func FormatBaseline(b *domain.Baseline, codes map[string]string) string {
	var sb strings.Builder
	state := Dim("inactive")
	if b.IsActive {
		state = StyleGreen.Render("active")
	}
	sb.WriteString(fmt.Sprintf("%s  %s  %s\n", Bold(fmt.Sprintf("v%d %s", b.Version, b.Name)), state, DateCell(b.ApprovedAt)))
	if b.Notes != "" {
		sb.WriteString(Dim(b.Notes) + "\n")
	}
	sb.WriteString("\n")

	if len(b.Snapshots) == 0 {
		sb.WriteString(Dim("No staffed items were frozen in this baseline."))
		return RenderBox("Baseline", sb.String())
	}

	snaps := append([]*domain.BaselineSnapshot(nil), b.Snapshots...)
	sort.SliceStable(snaps, func(i, j int) bool { return label(codes, snaps[i].WBSItemID) < label(codes, snaps[j].WBSItemID) })
	cols := []Column{{Title: "ITEM"}, {Title: "MANDAY", Right: true}, {Title: "CREW/DAY", Right: true}, {Title: "START"}, {Title: "END"}, {Title: "DAYS", Right: true}}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			label(codes, s.WBSItemID),
			Num(s.TotalManday),
			Num(s.ManpowerPerDay),
			DateCell(s.StartDate),
			DateCell(s.EndDate),
			fmt.Sprint(len(s.DailyPlan)),
		})
	}
	sb.WriteString(RenderColumns(cols, rows))
	return RenderBox("Baseline", sb.String())
}

func label(codes map[string]string, id string) string {
	if c, ok := codes[id]; ok {
		return c
	}
	return TruncID(id)
}

// FormatComparison renders planned against actual mandays per item.
func FormatComparison(cmp *app.BaselineComparison) string {
	cols := []Column{
		{Title: "CODE"}, {Title: "NAME"},
		{Title: "PLANNED", Right: true}, {Title: "ACTUAL", Right: true},
		{Title: "VARIANCE", Right: true}, {Title: "SPI", Right: true},
	}
	rows := make([][]string, 0, len(cmp.Items)+1)
	for _, it := range cmp.Items {
		spi := Dim("--")
		if it.PlannedManday > 0 {
			spi = fmt.Sprintf("%.2f", it.SPI)
		}
		rows = append(rows, []string{
			it.WBSCode, it.WBSName,
			Num(it.PlannedManday), Num(it.ActualManday),
			varianceStyled(it.Variance), spi,
		})
	}
	rows = append(rows, []string{
		Bold("TOTAL"), "",
		Bold(Num(cmp.PlannedManday)), Bold(Num(cmp.ActualManday)),
		varianceStyled(cmp.Variance), "",
	})

	title := "Comparison"
	if cmp.Baseline != nil {
		title = fmt.Sprintf("Baseline v%d vs actual", cmp.Baseline.Version)
	}
	return RenderBox(title, RenderColumns(cols, rows))
}

// varianceStyled shows overspend in red and underspend in green.
func varianceStyled(v float64) string {
	s := Signed(v, 2)
	switch {
	case v > 0:
		return StyleRed.Render(s)
	case v < 0:
		return StyleGreen.Render(s)
	default:
		return Dim(s)
	}
}
