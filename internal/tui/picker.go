package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agenda/internal/calendar"
)

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker
	if p == nil {
		m.closePicker()
		return m, nil
	}

	var err error
	switch msg.String() {
	case "left", "h":
		err = p.MoveFocus(-1)
	case "right", "l":
		err = p.MoveFocus(1)
	case "up", "k":
		err = p.MoveFocus(-7)
	case "down", "j":
		err = p.MoveFocus(7)
	case "pgup", "<", "b":
		err = p.Prev()
	case "pgdown", ">", "n":
		err = p.Next()
	case "enter", " ":
		err = p.PickFocused()
	case "t":
		err = p.PickToday()
	case "esc", "q":
		err = p.Cancel()
	default:
		return m, nil
	}

	if err != nil {
		m.setError(err)
	}
	if p.Done() {
		if d, ok := p.Result(); ok && err == nil {
			m.setStatus("Date set to " + calendar.FormatDate(d))
		}
		m.closePicker()
	}
	return m, nil
}

func (m *Model) renderPicker() string {
	p := m.picker
	if p == nil {
		return ""
	}

	today := p.Today()
	cur := p.Cursor()
	isToday := func(day int) bool {
		return cur.Year == today.Year() && cur.Month == today.Month() && day == today.Day()
	}

	header := m.styles.MonthHeader.Render("◀  " + p.Title() + "  ▶")

	var heads []string
	for _, wd := range p.Weekdays() {
		heads = append(heads, m.styles.DayHeader.Render(wd))
	}

	rows := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, heads...)}
	for _, week := range p.Grid() {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			switch {
			case day == 0:
				cells = append(cells, m.styles.DayCell.Render(" "))
			case day == p.Focus():
				cells = append(cells, m.styles.DayFocused.Render(strconv.Itoa(day)))
			case isToday(day):
				cells = append(cells, m.styles.DayToday.Render(strconv.Itoa(day)))
			default:
				cells = append(cells, m.styles.DayCell.Render(strconv.Itoa(day)))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	title := m.styles.Title.Render("Select date")
	return m.styles.FocusedBox.Render(title + "\n" + strings.Join(rows, "\n"))
}
