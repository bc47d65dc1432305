package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorTrack  = lipgloss.Color("#504945")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleTrack  = lipgloss.NewStyle().Foreground(ColorTrack)
)

// StageColor is the bar color of a workflow stage.
func StageColor(stage domain.Stage) lipgloss.Color {
	switch stage {
	case domain.StageDone:
		return ColorGreen
	case domain.StageTesting:
		return ColorBlue
	case domain.StageDoing:
		return ColorYellow
	default:
		return ColorDim
	}
}

// StageStyle renders in the stage color. Unplanned work is drawn faint.
func StageStyle(stage domain.Stage, unplanned bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(StageColor(stage))
	if unplanned {
		s = s.Faint(true)
	}
	return s
}

// StateIndicator returns a colored view state marker such as "● ACTIVE".
func StateIndicator(state app.ViewState) string {
	label := "● " + strings.ToUpper(string(state))
	switch state {
	case app.StateActive:
		return StyleGreen.Render(label)
	case app.StateLoading, app.StateAuthorized:
		return StyleYellow.Render(label)
	case app.StateUnauthorized, app.StateError:
		return StyleRed.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
