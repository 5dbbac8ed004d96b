package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/texteffects/scramble/internal/perf"
	"github.com/texteffects/scramble/internal/ui/common"
)

// View renders the full-screen application.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	colors := common.ThemeByID(a.effect.Theme())

	view := tea.View{
		AltScreen:       true,
		MouseMode:       tea.MouseModeCellMotion,
		BackgroundColor: colors.Background,
		ForegroundColor: colors.Foreground,
	}

	if a.quitting {
		view.SetContent("")
		return view
	}
	if !a.ready {
		view.SetContent("Loading...")
		return view
	}

	content := a.effect.View()
	if a.err != nil {
		content = a.overlayError(content, colors)
	}

	// Scanning registers the marked zones for mouse hit testing.
	view.SetContent(a.zone.Scan(content))
	return view
}

func (a *App) overlayError(content string, colors common.ThemeColors) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors.Error).
		Padding(1, 2).
		MaxWidth(60).
		Render("Error: " + a.err.Error() + "\n\nPress any key to dismiss.")
	return content + "\n" + box
}
