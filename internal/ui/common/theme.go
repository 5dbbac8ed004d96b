package common

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// ThemeID identifies a color theme.
type ThemeID string

const (
	ThemeDark   ThemeID = "dark"
	ThemeLight  ThemeID = "light"
	ThemeMatrix ThemeID = "matrix"
)

// themeOrder is the cycle used by the next-theme key.
var themeOrder = []ThemeID{ThemeDark, ThemeLight, ThemeMatrix}

// ThemeColors defines all colors used by the application.
type ThemeColors struct {
	Background color.Color
	Foreground color.Color
	Muted      color.Color
	Primary    color.Color
	Scramble   color.Color // unrevealed glyphs
	Success    color.Color
	Error      color.Color
}

// ThemeByID returns the palette for a theme, falling back to dark for
// unknown IDs.
func ThemeByID(id ThemeID) ThemeColors {
	switch id {
	case ThemeLight:
		return ThemeColors{
			Background: lipgloss.Color("#fafafa"),
			Foreground: lipgloss.Color("#383a42"),
			Muted:      lipgloss.Color("#a0a1a7"),
			Primary:    lipgloss.Color("#4078f2"),
			Scramble:   lipgloss.Color("#a626a4"),
			Success:    lipgloss.Color("#50a14f"),
			Error:      lipgloss.Color("#e45649"),
		}
	case ThemeMatrix:
		return ThemeColors{
			Background: lipgloss.Color("#0d0208"),
			Foreground: lipgloss.Color("#00ff41"),
			Muted:      lipgloss.Color("#008f11"),
			Primary:    lipgloss.Color("#00ff41"),
			Scramble:   lipgloss.Color("#003b00"),
			Success:    lipgloss.Color("#00ff41"),
			Error:      lipgloss.Color("#ff2222"),
		}
	default:
		// Tokyo Night-inspired palette
		return ThemeColors{
			Background: lipgloss.Color("#1a1b26"),
			Foreground: lipgloss.Color("#a9b1d6"),
			Muted:      lipgloss.Color("#565f89"),
			Primary:    lipgloss.Color("#7aa2f7"),
			Scramble:   lipgloss.Color("#bb9af7"),
			Success:    lipgloss.Color("#9ece6a"),
			Error:      lipgloss.Color("#f7768e"),
		}
	}
}

// NextTheme returns the theme after id in the cycle.
func NextTheme(id ThemeID) ThemeID {
	for i, t := range themeOrder {
		if t == id {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}
