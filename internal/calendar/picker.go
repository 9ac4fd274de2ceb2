package calendar

import (
	"errors"
	"fmt"
	"time"

	appLog "agenda/internal/log"
)

// ErrPickerClosed is returned by any operation on a picker that already
// delivered a date or was cancelled.
var ErrPickerClosed = errors.New("calendar: picker closed")

// OnPick receives the chosen date. A non-nil error is returned from the
// Pick call that triggered it.
type OnPick func(date time.Time) error

type pickerState uint8

const (
	pickerOpen pickerState = iota
	pickerPicked
	pickerCancelled
)

// Picker is a single-use date picker. It starts on a seed date, navigates
// by month, and closes after one pick or cancel.
type Picker struct {
	cursor    Cursor
	weekStart time.Weekday
	focus     int
	onPick    OnPick
	now       func() time.Time

	state  pickerState
	result time.Time
}

// PickerOption customises a Picker.
type PickerOption func(*Picker)

// WithClock overrides the clock used by PickToday.
func WithClock(now func() time.Time) PickerOption {
	return func(p *Picker) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPicker opens a picker on the month of seed with seed's day focused.
func NewPicker(seed time.Time, weekStart time.Weekday, onPick OnPick, opts ...PickerOption) *Picker {
	p := &Picker{
		cursor:    NewCursor(seed),
		weekStart: weekStart,
		focus:     seed.Day(),
		onPick:    onPick,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Picker) Cursor() Cursor { return p.cursor }
func (p *Picker) Grid() Grid { return p.cursor.Render(p.weekStart) }
func (p *Picker) Title() string { return p.cursor.Title() }
func (p *Picker) Weekdays() [7]string { return Weekdays(p.weekStart) }
func (p *Picker) Focus() int { return p.focus }
func (p *Picker) Done() bool { return p.state != pickerOpen }
func (p *Picker) Cancelled() bool { return p.state == pickerCancelled }
func (p *Picker) Today() time.Time { return Today(p.now) }

// Result returns the picked date; ok is false unless a date was picked.
func (p *Picker) Result() (time.Time, bool) {
	return p.result, p.state == pickerPicked
}

// Next shows the following month.
func (p *Picker) Next() error { return p.shift(1) }

// Prev shows the previous month.
func (p *Picker) Prev() error { return p.shift(-1) }

func (p *Picker) shift(delta int) error {
	if p.Done() {
		return ErrPickerClosed
	}
	p.cursor = p.cursor.Advance(delta)
	if n := p.cursor.Days(); p.focus > n {
		p.focus = n
	}
	return nil
}

// MoveFocus moves the focused day by delta days, crossing into the
// neighbouring month when needed.
func (p *Picker) MoveFocus(delta int) error {
	if p.Done() {
		return ErrPickerClosed
	}
	cur, err := p.cursor.Select(p.focus)
	if err != nil {
		cur, _ = p.cursor.Select(1)
	}
	next := cur.AddDate(0, 0, delta)
	p.cursor = NewCursor(next)
	p.focus = next.Day()
	return nil
}

// PickFocused picks the currently focused day.
func (p *Picker) PickFocused() error {
	return p.Pick(p.focus)
}

// Pick chooses day of the shown month, invokes the callback and closes the
// picker. An invalid day leaves the picker open.
func (p *Picker) Pick(day int) error {
	if p.Done() {
		return ErrPickerClosed
	}
	date, err := p.cursor.Select(day)
	if err != nil {
		return err
	}
	return p.deliver(date)
}

// PickToday chooses the current date regardless of the shown month.
func (p *Picker) PickToday() error {
	if p.Done() {
		return ErrPickerClosed
	}
	return p.deliver(p.Today())
}

// Cancel closes the picker without invoking the callback.
func (p *Picker) Cancel() error {
	if p.Done() {
		return ErrPickerClosed
	}
	p.state = pickerCancelled
	appLog.Debug("date picker cancelled", "month", p.cursor.Title())
	return nil
}

func (p *Picker) deliver(date time.Time) error {
	p.state = pickerPicked
	p.result = date
	p.cursor = NewCursor(date)
	p.focus = date.Day()

	if p.onPick == nil {
		return nil
	}
	if err := p.onPick(date); err != nil {
		appLog.Error("date picker callback failed", err, "date", FormatDate(date))
		return fmt.Errorf("calendar: deliver %s: %w", FormatDate(date), err)
	}
	appLog.Debug("date picked", "date", FormatDate(date))
	return nil
}
