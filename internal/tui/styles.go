package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Underline(true).Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	helperPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("141")).
				Padding(0, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	activeTaskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	completedTaskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	pendingTaskStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	checkStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	dimStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	xpStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	badgeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)
