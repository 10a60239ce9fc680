package cli

import "github.com/charmbracelet/lipgloss"

// Color palette for the dashboard views.
var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("244")
	colorWarn    = lipgloss.Color("#FFC107")
	colorDanger  = lipgloss.Color("#e53935")
	colorBorder  = lipgloss.Color("240")
	colorHeading = lipgloss.Color("#2196F3")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeading)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(22)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorMuted)
)
