package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitepace/internal/app"
)

const matrixBarWidth = 8

// FormatMatrix renders the daily grid: one row per item with its
// all-time progress, then planned/actual manpower per date, then totals.
// Future dates are dimmed.
func FormatMatrix(resp *app.MatrixResponse) string {
	cols := []Column{{Title: "CODE"}, {Title: "PROGRESS"}, {Title: "DONE", Right: true}}
	for _, d := range resp.DateRange {
		cols = append(cols, Column{Title: shortDate(d), Right: true})
	}

	rows := make([][]string, 0, len(resp.Items)+1)
	for _, it := range resp.Items {
		code := strings.Repeat("  ", it.Level) + it.Code
		if it.IsSummary {
			rows = append(rows, []string{Bold(code)})
			continue
		}
		row := []string{
			code,
			RenderCompactBar(it.ProgressPct, matrixBarWidth, false) + fmt.Sprintf(" %3.0f%%", it.ProgressPct),
			Num(it.QtyDone) + "/" + Num(it.Qty),
		}
		for _, d := range resp.DateRange {
			row = append(row, cellText(resp.Matrix[it.WBSItemID][d]))
		}
		rows = append(rows, row)
	}

	total := []string{Bold("TOTAL"), "", ""}
	for _, d := range resp.DateRange {
		t := resp.Totals[d]
		total = append(total, Bold(Num(t.Planned)+"/"+Num(t.Actual)))
	}
	rows = append(rows, total)

	return RenderColumns(cols, rows) + Dim("cells show planned/actual workers") + "\n"
}

func cellText(c app.Cell) string {
	if c.Planned == 0 && c.Actual == 0 {
		return Dim("·")
	}
	text := Num(c.Planned) + "/" + Num(c.Actual)
	switch {
	case c.IsFuture:
		return Dim(text)
	case c.Actual < c.Planned:
		return StyleYellow.Render(text)
	default:
		return text
	}
}

// shortDate turns YYYY-MM-DD into MM-DD for column headers.
func shortDate(d string) string {
	if len(d) == len("2006-01-02") {
		return d[5:]
	}
	return d
}
