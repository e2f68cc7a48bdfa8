package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + strings.TrimRight(content, "\n")
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(strings.TrimRight(content, "\n"))
}

// RelativeDateFrom describes t relative to now in whole days, e.g. "In 3d".
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(domain.Today(t).Sub(domain.Today(now)).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DateCell renders an optional date as YYYY-MM-DD, or a dim placeholder.
func DateCell(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return domain.FormatDate(*t)
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectPaused:
		return StyleYellow.Render("○ Paused")
	case domain.ProjectDone:
		return StyleDim.Render("✔ Done")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// Num formats a quantity without trailing zeros: 12, 12.5, 0.125.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Signed formats v with the given precision and a leading + when positive.
func Signed(v float64, places int) string {
	s := strconv.FormatFloat(v, 'f', places, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}

// TrendStyled colors a day-over-day delta: green up, red down.
func TrendStyled(v float64, places int) string {
	s := Signed(v, places)
	switch {
	case v > 0:
		return StyleGreen.Render(s)
	case v < 0:
		return StyleRed.Render(s)
	default:
		return Dim(s)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
