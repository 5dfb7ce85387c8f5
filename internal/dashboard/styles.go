package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/memtop/internal/ui"
)

// Styles for the dashboard chrome. The data rows reuse the ANSI palette
// from the ui package so the dashboard degrades on 16-color terminals.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Bold(true).
			Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(ui.ColorSecondary).
				Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	warnStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)

	okStyle = lipgloss.NewStyle().
		Foreground(ui.ColorSuccess)
)
