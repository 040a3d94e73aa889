package ui

import "github.com/charmbracelet/lipgloss"

// Styling lives in one place so colors and layout tweaks are easy to reason about.

var (
	accent = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#a5b4fc"}
	muted  = lipgloss.AdaptiveColor{Light: "#71717a", Dark: "#a1a1aa"}
	danger = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	good   = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}

	appStyle = lipgloss.NewStyle().Margin(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	badgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#4f46e5"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	itemStyle         = lipgloss.NewStyle()
	selectedItemStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle        = lipgloss.NewStyle().Foreground(muted)
	helpStyle         = lipgloss.NewStyle().Foreground(muted)

	statusStyle      = lipgloss.NewStyle().Foreground(muted)
	statusErrorStyle = lipgloss.NewStyle().Foreground(danger)
	copiedStyle      = lipgloss.NewStyle().Bold(true).Foreground(good)
)
