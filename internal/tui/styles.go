package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("111")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("183"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	requiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	dirtyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))

	hunkHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	fileNameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	additionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	deletionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)
)
