package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor throughout and "faint" styling is
// only applied on dark backgrounds (faint text on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorBodyFg     lipgloss.TerminalColor = ac("238", "250")
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleCrumb    = lipgloss.NewStyle().Foreground(colorMuted)
	styleSelected = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	stylePrefix   = lipgloss.NewStyle().Foreground(colorAccent)
	styleBody     = lipgloss.NewStyle().Foreground(colorBodyFg).Italic(true)
	styleStatus   = lipgloss.NewStyle().Foreground(colorMuted)
	styleHelp     = faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
)

// hasDarkBackground is queried once; termenv's detection can block on some
// terminals if called repeatedly mid-render.
var hasDark = termenv.HasDarkBackground()
