package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	account    lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	notice     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	figureKey  lipgloss.Style
	figure     lipgloss.Style
	meta       lipgloss.Style
	pending    lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("203")).PaddingLeft(1),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		figureKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		figure:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
