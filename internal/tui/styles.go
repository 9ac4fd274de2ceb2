package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"agenda/internal/config"
)

// Styles groups every lipgloss style the shell renders with.
type Styles struct {
	Title      lipgloss.Style
	Box        lipgloss.Style
	FocusedBox lipgloss.Style
	Label      lipgloss.Style
	Help       lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style

	DayCell     lipgloss.Style
	DayFocused  lipgloss.Style
	DayToday    lipgloss.Style
	DayHeader   lipgloss.Style
	MonthHeader lipgloss.Style
	Button      lipgloss.Style
	Table       table.Styles
}

func newStyles(theme config.ThemeConfig) Styles {
	accent := lipgloss.Color(theme.Accent)
	muted := lipgloss.Color(theme.Muted)
	danger := lipgloss.Color(theme.Error)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("230")).
		Background(accent).
		Bold(false)

	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		Box:        box,
		FocusedBox: box.BorderForeground(accent),
		Label:      lipgloss.NewStyle().Width(22).Foreground(muted),
		Help:       lipgloss.NewStyle().Foreground(muted),
		Status:     lipgloss.NewStyle().Foreground(accent),
		Error:      lipgloss.NewStyle().Foreground(danger).Bold(true),

		DayCell:     lipgloss.NewStyle().Width(4).Align(lipgloss.Center),
		DayFocused:  lipgloss.NewStyle().Width(4).Align(lipgloss.Center).Foreground(lipgloss.Color("230")).Background(accent).Bold(true),
		DayToday:    lipgloss.NewStyle().Width(4).Align(lipgloss.Center).Underline(true),
		DayHeader:   lipgloss.NewStyle().Width(4).Align(lipgloss.Center).Foreground(muted),
		MonthHeader: lipgloss.NewStyle().Width(28).Align(lipgloss.Center).Bold(true),
		Button:      lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("230")).Background(accent),
		Table:       ts,
	}
}
