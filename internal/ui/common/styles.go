package common

import "charm.land/lipgloss/v2"

// Styles contains all the application styles
type Styles struct {
	// Text hierarchy
	Title lipgloss.Style // Headline above the effect
	Muted lipgloss.Style // De-emphasized text

	// The animated display line
	Display    lipgloss.Style // Revealed/settled text
	Scrambling lipgloss.Style // Text while still resolving

	// Status line
	Status lipgloss.Style

	// Help bar
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns styles for the dark theme.
func DefaultStyles() Styles {
	return StylesFor(ThemeDark)
}

// StylesFor builds the style set for a theme.
func StylesFor(id ThemeID) Styles {
	colors := ThemeByID(id)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Primary),

		Muted: lipgloss.NewStyle().
			Foreground(colors.Muted),

		Display: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Foreground),

		Scrambling: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Scramble),

		Status: lipgloss.NewStyle().
			Foreground(colors.Muted),

		Help: lipgloss.NewStyle().
			Foreground(colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(colors.Primary),

		HelpDesc: lipgloss.NewStyle().
			Foreground(colors.Muted),

		Error: lipgloss.NewStyle().
			Foreground(colors.Error),

		Success: lipgloss.NewStyle().
			Foreground(colors.Success),
	}
}
