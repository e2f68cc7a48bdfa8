package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// FormatOptimize renders ranked crew suggestions.
func FormatOptimize(resp *app.OptimizeResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s behind  %s ahead\n\n",
		StyleRed.Render(fmt.Sprint(resp.Behind)), StyleBlue.Render(fmt.Sprint(resp.Ahead))))

	if len(resp.Suggestions) == 0 {
		b.WriteString(StyleGreen.Render("✔ no crew changes suggested"))
		return RenderBox("Optimizer", b.String())
	}
	for i, s := range resp.Suggestions {
		b.WriteString(fmt.Sprintf("%s %s %s\n   %s\n",
			Dim(fmt.Sprintf("%2d.", i+1)),
			suggestionBadge(s.Type),
			impactStyled(s.ImpactScore),
			s.Description))
	}
	return RenderBox("Optimizer", b.String())
}

func suggestionBadge(t domain.SuggestionType) string {
	switch t {
	case domain.SuggestReallocate:
		return StylePurple.Render("⇄ reallocate ")
	case domain.SuggestExtendShift:
		return StyleYellow.Render("◷ extend shift")
	default:
		return Dim(string(t))
	}
}

func impactStyled(score int) string {
	text := fmt.Sprintf("impact %d", score)
	switch {
	case score >= 50:
		return StyleRed.Render(text)
	case score >= 25:
		return StyleYellow.Render(text)
	default:
		return Dim(text)
	}
}
