package status

import (
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	account    lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	key        lipgloss.Style
	meta       lipgloss.Style
	link       lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	severity   map[domain.Severity]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		key:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		link:       lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("111")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		severity: map[domain.Severity]lipgloss.Style{
			domain.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			domain.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			domain.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
			domain.SeverityError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
	}
}
