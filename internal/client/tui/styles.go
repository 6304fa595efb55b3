package tui

import "github.com/charmbracelet/lipgloss"

var (
	cyan    = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
	emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	rose    = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
	muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			MarginBottom(1)

	focusedSectionStyle = sectionStyle.
				BorderForeground(cyan)

	noticeStyle = lipgloss.NewStyle().
			Foreground(rose)

	greetingStyle = lipgloss.NewStyle().
			Foreground(emerald).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(muted)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)
)
