package console

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#BD93F9")
	colorMuted  = lipgloss.Color("#6272A4")
	colorDanger = lipgloss.Color("#FF5555")
	colorOK     = lipgloss.Color("#50FA7B")
	colorWarn   = lipgloss.Color("#F1FA8C")
	colorText   = lipgloss.Color("#F8F8F2")
)

type styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Footer    lipgloss.Style
	Muted     lipgloss.Style
	Prompt    lipgloss.Style
	ErrorBox  lipgloss.Style
	Toast     map[string]lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Tab: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorMuted),
		ActiveTab: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(colorText).
			Background(colorAccent),
		Footer: lipgloss.NewStyle().
			Foreground(colorMuted),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		Prompt: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Foreground(colorDanger).
			Padding(0, 1),
		Toast: map[string]lipgloss.Style{
			"info":       lipgloss.NewStyle().Foreground(colorOK),
			"transport":  lipgloss.NewStyle().Foreground(colorDanger),
			"business":   lipgloss.NewStyle().Foreground(colorWarn),
			"validation": lipgloss.NewStyle().Foreground(colorWarn),
			"event":      lipgloss.NewStyle().Foreground(colorAccent),
		},
	}
}
