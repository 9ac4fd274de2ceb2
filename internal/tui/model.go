// Package tui is the terminal shell of the agenda: entry form, event table,
// date picker dialog and delete confirmation.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"agenda/internal/agenda"
	"agenda/internal/calendar"
	"agenda/internal/config"
	"agenda/internal/ics"
	appLog "agenda/internal/log"
	"agenda/internal/model"
)

// field is the focusable part of the main view.
type field int

const (
	fieldDate field = iota
	fieldTime
	fieldDesc
	fieldTable
	fieldCount
)

type overlay int

const (
	overlayNone overlay = iota
	overlayPicker
	overlayConfirm
)

const (
	dateWidth     = 12
	timeWidth     = 7
	minDescWidth  = 20
	defaultHeight = 12
)

// Options configures the shell.
type Options struct {
	WeekStart     time.Weekday
	ConfirmDelete bool
	ExportPath    string
	Theme         config.ThemeConfig
	// Now is the clock for the picker's today shortcut and export stamps.
	Now func() time.Time
}

// OptionsFromConfig maps the loaded configuration onto shell options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		WeekStart:     cfg.FirstWeekday(),
		ConfirmDelete: cfg.ShouldConfirmDelete(),
		ExportPath:    cfg.ExportPath,
		Theme:         cfg.Theme,
		Now:           time.Now,
	}
}

// Model is the bubbletea model of the agenda window.
type Model struct {
	store *agenda.Store
	form  agenda.Form
	opts  Options

	inputs [3]textinput.Model
	table  table.Model
	focus  field

	overlay       overlay
	picker        *calendar.Picker
	pendingDelete uuid.UUID

	status    string
	statusErr bool

	styles Styles
	width  int
}

// New builds the shell around store. The store is owned by the caller.
func New(store *agenda.Store, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportPath == "" {
		opts.ExportPath = "agenda.ics"
	}

	m := &Model{
		store:  store,
		opts:   opts,
		styles: newStyles(opts.Theme),
	}

	placeholders := [3]string{"YYYY-MM-DD", "HH:MM", "What is happening?"}
	limits := [3]int{10, 5, 256}
	widths := [3]int{12, 6, 50}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = widths[i]
		ti.Prompt = ""
		m.inputs[i] = ti
	}
	m.inputs[fieldDate].Focus()

	m.table = table.New(
		table.WithColumns(columns(0)),
		table.WithHeight(defaultHeight),
		table.WithStyles(m.styles.Table),
	)
	m.table.Blur()
	m.refreshTable(uuid.Nil)
	return m
}

func columns(totalWidth int) []table.Column {
	desc := 50
	if totalWidth > 0 {
		desc = totalWidth - dateWidth - timeWidth - 10
		if desc < minDescWidth {
			desc = minDescWidth
		}
	}
	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Time", Width: timeWidth},
		{Title: "Description", Width: desc},
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		if h := msg.Height - 16; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.overlay {
		case overlayPicker:
			return m.handlePickerKey(msg)
		case overlayConfirm:
			return m.handleConfirmKey(msg)
		}
		return m.handleMainKey(msg)
	}

	return m.forward(msg)
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+q":
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "enter":
		m.addEvent()
		return m, nil
	case "ctrl+t":
		m.openPicker()
		return m, nil
	case "ctrl+d":
		m.requestDelete()
		return m, nil
	case "delete":
		if m.focus == fieldTable {
			m.requestDelete()
			return m, nil
		}
	case "ctrl+e":
		m.export()
		return m, nil
	}
	return m.forward(msg)
}

// forward hands msg to the focused input or the table.
func (m *Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == fieldTable {
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.syncField(m.focus, after)
	}
	return m, cmd
}

func (m *Model) syncField(f field, v string) {
	switch f {
	case fieldDate:
		m.form.SetDate(v)
	case fieldTime:
		m.form.SetTime(v)
	case fieldDesc:
		m.form.SetDescription(v)
	}
}

func (m *Model) setFocus(f field) {
	m.focus = f
	for i := range m.inputs {
		if field(i) == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	if f == fieldTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) addEvent() {
	ev, err := m.form.Submit(m.store)
	if err != nil {
		m.setError(err)
		return
	}
	m.inputs[fieldDesc].SetValue(m.form.Description)
	m.refreshTable(ev.ID)
	m.setStatus(fmt.Sprintf("Added %s %s %s", ev.Date, ev.Time, ev.Description))
}

// selectedID returns the identity of the highlighted row, or uuid.Nil.
func (m *Model) selectedID() uuid.UUID {
	all := m.store.All()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(all) {
		return uuid.Nil
	}
	return all[idx].ID
}

func (m *Model) requestDelete() {
	id := m.selectedID()
	if id == uuid.Nil {
		m.setError(agenda.ErrNoSelection)
		return
	}
	if !m.opts.ConfirmDelete {
		m.finishDelete(id, true)
		return
	}
	m.pendingDelete = id
	m.overlay = overlayConfirm
	m.clearStatus()
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		m.finishDelete(m.pendingDelete, true)
	case "n", "esc":
		m.finishDelete(m.pendingDelete, false)
	}
	return m, nil
}

func (m *Model) finishDelete(id uuid.UUID, confirmed bool) {
	m.overlay = overlayNone
	m.pendingDelete = uuid.Nil

	ev, _ := m.store.Get(id)
	err := m.store.RemoveConfirmed(id, confirmed)
	switch {
	case errors.Is(err, agenda.ErrDeletionNotConfirmed):
		m.clearStatus()
	case err != nil:
		m.setError(err)
	default:
		m.refreshTable(uuid.Nil)
		m.setStatus("Deleted " + ev.Description)
	}
}

func (m *Model) openPicker() {
	seed := calendar.SeedFromText(m.inputs[fieldDate].Value(), m.opts.Now())
	m.picker = calendar.NewPicker(seed, m.opts.WeekStart, m.setDateFromPicker, calendar.WithClock(m.opts.Now))
	m.overlay = overlayPicker
	m.clearStatus()
}

func (m *Model) setDateFromPicker(d time.Time) error {
	v := calendar.FormatDate(d)
	m.inputs[fieldDate].SetValue(v)
	m.form.SetDate(v)
	return nil
}

func (m *Model) closePicker() {
	m.picker = nil
	m.overlay = overlayNone
}

func (m *Model) export() {
	events := m.store.All()
	if err := ics.ExportFile(m.opts.ExportPath, events, m.opts.Now()); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("Exported %d events to %s", len(events), m.opts.ExportPath))
}

// refreshTable rebuilds the rows from the store and moves the cursor onto
// focusID when it is present.
func (m *Model) refreshTable(focusID uuid.UUID) {
	all := m.store.All()
	rows := make([]table.Row, 0, len(all))
	cursor := m.table.Cursor()
	for i, ev := range all {
		rows = append(rows, table.Row(ev.Row()))
		if ev.ID == focusID {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.table.SetCursor(cursor)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	n := agenda.NoticeFor(err)
	if n.Title == "" {
		m.clearStatus()
		return
	}
	m.status = n.Title + ": " + n.Message
	m.statusErr = true
	// User-input problems are shown, not logged.
	if !isUserError(err) {
		appLog.Error("agenda action failed", err)
	}
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func isUserError(err error) bool {
	var verr *agenda.ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, agenda.ErrNoSelection) ||
		errors.Is(err, agenda.ErrDeletionNotConfirmed)
}

// Events returns the session's events in timestamp order.
func (m *Model) Events() []model.Event {
	return m.store.All()
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Agenda"))
	b.WriteString("\n")

	listBox := m.styles.Box
	if m.focus == fieldTable && m.overlay == overlayNone {
		listBox = m.styles.FocusedBox
	}
	b.WriteString(listBox.Render(m.table.View()))
	b.WriteString("\n")

	switch m.overlay {
	case overlayPicker:
		b.WriteString(m.renderPicker())
	case overlayConfirm:
		b.WriteString(m.renderConfirm())
	default:
		b.WriteString(m.renderForm())
	}
	b.WriteString("\n")

	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderForm() string {
	labels := [3]string{"Date (YYYY-MM-DD):", "Time (HH:MM 24h):", "Description:"}
	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Label.Render(label),
			m.inputs[i].View(),
		))
	}
	box := m.styles.Box
	if m.focus != fieldTable {
		box = m.styles.FocusedBox
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderConfirm() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Confirm deletion"),
		"Delete the selected event?",
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Button.Render("y  Delete"),
			"  ",
			m.styles.Help.Render("n  Keep"),
		),
	)
	return m.styles.FocusedBox.Render(body)
}

func (m *Model) renderHelp() string {
	var keys string
	switch m.overlay {
	case overlayPicker:
		keys = "←/→/↑/↓ move · pgup/pgdn month · enter pick · t today · esc cancel"
	case overlayConfirm:
		keys = "y confirm · n keep"
	default:
		keys = "enter add · tab next field · ctrl+t calendar · ctrl+d delete · ctrl+e export · esc quit"
	}
	return m.styles.Help.Render(keys)
}
