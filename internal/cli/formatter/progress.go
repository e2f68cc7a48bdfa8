package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for a percentage in
// [0, 100]. Green above 66, yellow from 33, red below.
func RenderProgress(pct float64, width int) string {
	return fmt.Sprintf("[%s] %3.0f%%", bar(pct, width, false), clampPct(pct))
}

// RenderCompactBar renders only the blocks, for use inside table cells.
func RenderCompactBar(pct float64, width int, dim bool) string {
	return bar(pct, width, dim)
}

func clampPct(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

func bar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	filled := int(pct / 100 * float64(width))
	blocks := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return blocks
	}

	style := StyleGreen
	switch {
	case pct < 33:
		style = StyleRed
	case pct < 66:
		style = StyleYellow
	}
	return style.Render(blocks)
}
