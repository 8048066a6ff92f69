package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("86")  // Cyan
	colorSecondary = lipgloss.Color("240") // Gray
	colorSuccess   = lipgloss.Color("82")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
	colorDanger    = lipgloss.Color("196") // Red
	colorMuted     = lipgloss.Color("245") // Light gray
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	progressBarEmptyStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	highModeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	lowModeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	disturbanceStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorDanger)

	chosenActionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)
)

// getChargeColor returns color based on remaining charge percentage.
func getChargeColor(percent float64) lipgloss.Color {
	switch {
	case percent <= 20:
		return colorDanger
	case percent <= 40:
		return colorWarning
	default:
		return colorSuccess
	}
}
