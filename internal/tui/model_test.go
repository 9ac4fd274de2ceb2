package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"agenda/internal/agenda"
	"agenda/internal/config"
)

var testNow = time.Date(2025, 9, 14, 10, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T, mutate func(*Options)) (*Model, *agenda.Store) {
	t.Helper()
	opts := OptionsFromConfig(config.DefaultConfig())
	opts.Now = func() time.Time { return testNow }
	opts.ExportPath = filepath.Join(t.TempDir(), "agenda.ics")
	if mutate != nil {
		mutate(&opts)
	}
	store := agenda.NewStore()
	return New(store, opts), store
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

// fill types one entry into the form and submits it.
func fill(m *Model, date, clock, desc string) {
	m.setFocus(fieldDate)
	m.inputs[fieldDate].SetValue("")
	m.form.SetDate("")
	send(m, runes(date), key(tea.KeyTab))
	m.inputs[fieldTime].SetValue("")
	m.form.SetTime("")
	send(m, runes(clock), key(tea.KeyTab), runes(desc), key(tea.KeyEnter))
}

func TestAddEventKeepsDateAndTime(t *testing.T) {
	m, store := newTestModel(t, nil)

	fill(m, "2025-09-16", "08:30", "Dentist")

	if store.Len() != 1 {
		t.Fatalf("store Len = %d, want 1 (status %q)", store.Len(), m.status)
	}
	if got := m.inputs[fieldDesc].Value(); got != "" {
		t.Errorf("description not cleared: %q", got)
	}
	if m.inputs[fieldDate].Value() != "2025-09-16" || m.inputs[fieldTime].Value() != "08:30" {
		t.Errorf("date/time not retained: %q %q", m.inputs[fieldDate].Value(), m.inputs[fieldTime].Value())
	}
	if m.form.State() != agenda.FormAccepted {
		t.Errorf("form state = %s", m.form.State())
	}
	if m.statusErr || !strings.Contains(m.status, "Dentist") {
		t.Errorf("status = %q (err %v)", m.status, m.statusErr)
	}
}

func TestTableFollowsChronologicalOrder(t *testing.T) {
	m, _ := newTestModel(t, nil)

	fill(m, "2025-09-16", "08:30", "Dentist")
	fill(m, "2025-09-15", "09:00", "Gym")

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][2] != "Gym" || rows[1][2] != "Dentist" {
		t.Errorf("rows = %v, want Gym before Dentist", rows)
	}
	events := m.Events()
	if len(events) != 2 || events[0].Description != "Gym" || events[1].Description != "Dentist" {
		t.Errorf("Events() = %v", events)
	}
	// The newest entry is highlighted.
	if m.table.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", m.table.Cursor())
	}
}

func TestRejectedEntryShowsNotice(t *testing.T) {
	m, store := newTestModel(t, nil)

	fill(m, "2025-09-16", "24:00", "Dentist")

	if store.Len() != 0 {
		t.Fatal("invalid entry was stored")
	}
	if !m.statusErr || !strings.HasPrefix(m.status, "Invalid time") {
		t.Errorf("status = %q (err %v)", m.status, m.statusErr)
	}
	if m.inputs[fieldDesc].Value() != "Dentist" {
		t.Error("fields not retained after rejection")
	}
	if m.form.State() != agenda.FormRejected {
		t.Errorf("form state = %s", m.form.State())
	}
}

func TestEmptyFormRejected(t *testing.T) {
	m, store := newTestModel(t, nil)
	send(m, key(tea.KeyEnter))
	if store.Len() != 0 || !strings.HasPrefix(m.status, "Incomplete fields") {
		t.Errorf("status = %q, len %d", m.status, store.Len())
	}
}

func TestPickerSetsDateField(t *testing.T) {
	m, store := newTestModel(t, nil)
	send(m, runes("2025-09-16"), key(tea.KeyCtrlT))

	if m.overlay != overlayPicker || m.picker == nil {
		t.Fatal("picker not opened")
	}
	if !strings.Contains(m.View(), "September 2025") {
		t.Error("picker view lacks the month title")
	}

	send(m, key(tea.KeyRight), key(tea.KeyEnter))

	if m.overlay != overlayNone || m.picker != nil {
		t.Fatal("picker still open after pick")
	}
	if got := m.inputs[fieldDate].Value(); got != "2025-09-17" {
		t.Errorf("date field = %q, want 2025-09-17", got)
	}
	if m.form.Date != "2025-09-17" {
		t.Errorf("form date = %q", m.form.Date)
	}
	if store.Len() != 0 {
		t.Error("picking a date touched the store")
	}
}

func TestPickerMonthNavigation(t *testing.T) {
	m, _ := newTestModel(t, nil)
	send(m, runes("2025-12-31"), key(tea.KeyCtrlT), key(tea.KeyPgDown))

	if got := m.picker.Title(); got != "January 2026" {
		t.Fatalf("title = %q", got)
	}
	send(m, key(tea.KeyEnter))
	if got := m.inputs[fieldDate].Value(); got != "2026-01-31" {
		t.Errorf("date field = %q, want 2026-01-31", got)
	}
}

func TestPickerCancelLeavesEverythingAlone(t *testing.T) {
	m, store := newTestModel(t, nil)
	fill(m, "2025-09-16", "08:30", "Dentist")
	before := store.All()

	m.setFocus(fieldDate)
	send(m, key(tea.KeyCtrlT), key(tea.KeyRight), key(tea.KeyPgDown), key(tea.KeyEsc))

	if m.overlay != overlayNone {
		t.Fatal("picker still open after esc")
	}
	if got := m.inputs[fieldDate].Value(); got != "2025-09-16" {
		t.Errorf("date field changed to %q", got)
	}
	after := store.All()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("store changed: %v -> %v", before, after)
	}
}

func TestPickerTodayShortcut(t *testing.T) {
	m, _ := newTestModel(t, nil)
	send(m, key(tea.KeyCtrlT), runes("n"), runes("t"))

	if got := m.inputs[fieldDate].Value(); got != "2025-09-14" {
		t.Errorf("date field = %q, want today 2025-09-14", got)
	}
}

func TestDeleteWithoutSelection(t *testing.T) {
	m, _ := newTestModel(t, nil)
	send(m, key(tea.KeyCtrlD))

	if m.overlay != overlayNone {
		t.Error("confirmation opened with nothing selected")
	}
	if !strings.HasPrefix(m.status, "No selection") {
		t.Errorf("status = %q", m.status)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	m, store := newTestModel(t, nil)
	fill(m, "2025-09-16", "08:30", "Dentist")
	fill(m, "2025-09-15", "09:00", "Gym")

	m.setFocus(fieldTable)
	send(m, key(tea.KeyDown), key(tea.KeyCtrlD))
	if m.overlay != overlayConfirm {
		t.Fatal("confirmation not shown")
	}
	if !strings.Contains(m.View(), "Delete the selected event?") {
		t.Error("confirm dialog not rendered")
	}

	// Declining is a silent no-op.
	send(m, runes("n"))
	if store.Len() != 2 || m.overlay != overlayNone || m.status != "" {
		t.Fatalf("after decline: len %d overlay %d status %q", store.Len(), m.overlay, m.status)
	}

	send(m, key(tea.KeyDelete), runes("y"))
	all := store.All()
	if len(all) != 1 || all[0].Description != "Gym" {
		t.Fatalf("after confirm: %v", all)
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("table rows = %d, want 1", len(m.table.Rows()))
	}
}

func TestDeleteWithoutConfirmationSetting(t *testing.T) {
	m, store := newTestModel(t, func(o *Options) { o.ConfirmDelete = false })
	fill(m, "2025-09-16", "08:30", "Dentist")

	send(m, key(tea.KeyCtrlD))
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
	if m.overlay != overlayNone {
		t.Error("confirmation shown although disabled")
	}
}

func TestExport(t *testing.T) {
	m, _ := newTestModel(t, nil)
	fill(m, "2025-09-16", "08:30", "Dentist")

	send(m, key(tea.KeyCtrlE))

	data, err := os.ReadFile(m.opts.ExportPath)
	if err != nil {
		t.Fatalf("export file: %v", err)
	}
	if !strings.Contains(string(data), "SUMMARY:Dentist") {
		t.Errorf("export lacks event:\n%s", data)
	}
	if m.statusErr || !strings.HasPrefix(m.status, "Exported 1 events") {
		t.Errorf("status = %q", m.status)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlQ} {
		m, _ := newTestModel(t, nil)
		cmd := send(m, key(k))
		if cmd == nil {
			t.Fatalf("%v: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: command is not quit", k)
		}
	}
}

func TestCtrlCQuitsFromPicker(t *testing.T) {
	m, _ := newTestModel(t, nil)
	cmd := send(m, key(tea.KeyCtrlT), key(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c inside the picker did not quit")
	}
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t, nil)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	cols := m.table.Columns()
	if got := cols[2].Width; got != 120-dateWidth-timeWidth-10 {
		t.Errorf("description width = %d", got)
	}
	send(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	if got := m.table.Columns()[2].Width; got != minDescWidth {
		t.Errorf("narrow description width = %d, want %d", got, minDescWidth)
	}
}

func TestViewShowsForm(t *testing.T) {
	m, _ := newTestModel(t, nil)
	v := m.View()
	for _, want := range []string{"Agenda", "Date (YYYY-MM-DD):", "Time (HH:MM 24h):", "Description:", "ctrl+t calendar"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
