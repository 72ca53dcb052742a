// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	SuccessTextStyle   lipgloss.Style
	TextMutedStyle     lipgloss.Style

	// TUI shared styles.
	StatusBarStyle      lipgloss.Style
	StatusErrorStyle    lipgloss.Style
	MenuStyle           lipgloss.Style
	MenuItemStyle       lipgloss.Style
	MenuItemActiveStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	SuccessTextStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	TextMutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		PaddingLeft(1)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		PaddingLeft(1)

	MenuStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Color(TokenFocusOutline)).
		Padding(0, 1)
	MenuItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	MenuItemActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true)
}

// Color resolves a notebook color token against the active theme.
func Color(token ColorToken) color.Color {
	return CurrentPalette.Color(token)
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	return CurrentPalette.GlamourStyle()
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
