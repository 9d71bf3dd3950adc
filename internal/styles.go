package internal

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorAccent  = "#00B7C3"
	colorSuccess = "#04B575"
	colorWarning = "#E5C07B"
	colorError   = "#E06C75"
	colorMuted   = "#626262"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent)).
			MarginTop(1).
			PaddingLeft(4)

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			PaddingLeft(4)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorSuccess))

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorError))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	valueStyle = lipgloss.NewStyle().Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent))
)
