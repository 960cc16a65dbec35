package app

import "github.com/charmbracelet/lipgloss"

var (
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	canvasPane  = paneStyle.Copy().BorderForeground(lipgloss.Color("62"))
	reportPane  = paneStyle.Copy().BorderForeground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)
