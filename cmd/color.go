package cmd

import "github.com/charmbracelet/lipgloss"

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

func primaryText(text string) string { return primaryStyle.Render(text) }
func errorText(text string) string   { return errorStyle.Render(text) }
func warningText(text string) string { return warningStyle.Render(text) }
func silentText(text string) string  { return silentStyle.Render(text) }
func boldText(text string) string    { return boldStyle.Render(text) }
