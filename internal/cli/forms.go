package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/chewy/internal/cli/formatter"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func chewyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateToken(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("token is required")
	}
	return nil
}

// tokenForm asks for the token Trello shows after authorizing chewy.
func tokenForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trello token").
				Description("Paste the token shown after allowing access.").
				EchoMode(huh.EchoModePassword).
				Value(value).
				Validate(validateToken),
		),
	).WithTheme(chewyHuhTheme()).WithShowHelp(false)
}

// boardPickerForm lets the user choose one of boards.
func boardPickerForm(boards []domain.Board, selected *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(boards))
	for _, b := range boards {
		opts = append(opts, huh.NewOption(b.Name, b.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Board").
				Options(opts...).
				Value(selected),
		),
	).WithTheme(chewyHuhTheme()).WithShowHelp(false)
}
