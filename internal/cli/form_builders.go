package cli

import (
	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// siteHuhTheme maps the formatter palette onto huh forms.
func siteHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm builds a yes/no prompt that writes into result.
func confirmForm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(siteHuhTheme()).WithShowHelp(false)
}

// confirm asks before a write when the session is interactive. Scripted
// runs and --yes proceed without a prompt.
func confirm(app *App, skip bool, title, description string) (bool, error) {
	if skip || !app.interactive() {
		return true, nil
	}
	ok := false
	if err := confirmForm(title, description, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
