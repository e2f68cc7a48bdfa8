package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Column describes one table column. Numeric columns read better right
// aligned.
type Column struct {
	Title string
	Right bool
}

// Cols builds left-aligned columns from plain titles.
func Cols(titles ...string) []Column {
	out := make([]Column, len(titles))
	for i, t := range titles {
		out[i] = Column{Title: t}
	}
	return out
}

// RenderTable renders a simple aligned table with left-aligned columns.
func RenderTable(headers []string, rows [][]string) string {
	return RenderColumns(Cols(headers...), rows)
}

// RenderColumns renders an aligned table with a header separator line.
// Widths are measured on visible text so styled cells line up.
func RenderColumns(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Title)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, c := range cols {
		header[i] = StyleHeader.Render(c.Title)
		rule[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeRow(&b, cols, widths, header)
	writeRow(&b, cols, widths, rule)
	for _, row := range rows {
		writeRow(&b, cols, widths, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cols []Column, widths []int, cells []string) {
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := widths[i] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		last := i == len(cols)-1
		switch {
		case c.Right:
			b.WriteString(strings.Repeat(" ", pad) + cell)
		case last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + strings.Repeat(" ", pad))
		}
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
