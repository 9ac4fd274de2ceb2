// Package calendar implements month navigation and the date picker state
// used by the agenda's date field.
package calendar

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"agenda/internal/model"
)

// ErrDayOutOfRange is returned by Select for a day the month does not have.
var ErrDayOutOfRange = errors.New("calendar: day out of range")

// Cursor is the year/month currently shown by the navigator.
// Month is always within [January, December].
type Cursor struct {
	Year  int
	Month time.Month
}

// Grid is a month laid out as weeks of seven cells. Zero marks a
// placeholder cell outside the month.
type Grid [][7]int

// NewCursor returns the cursor for the month containing t.
func NewCursor(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// ParseDate parses "YYYY-MM-DD" into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, strings.TrimSpace(s))
}

// SeedFromText picks the picker's starting date from the date field text,
// falling back to now when the text is not a valid date.
func SeedFromText(s string, now time.Time) time.Time {
	if d, err := ParseDate(s); err == nil {
		return d
	}
	return dateOf(now)
}

// Advance moves delta months forward (or backward when negative), rolling
// the year over as needed.
func (c Cursor) Advance(delta int) Cursor {
	m := int(c.Month) - 1 + delta
	y := c.Year + floorDiv(m, 12)
	m -= floorDiv(m, 12) * 12
	return Cursor{Year: y, Month: time.Month(m + 1)}
}

// Days returns the number of days in the cursor's month.
func (c Cursor) Days() int {
	return DaysIn(c.Year, c.Month)
}

// Title is the month heading, e.g. "September 2025".
func (c Cursor) Title() string {
	return c.Month.String() + " " + strconv.Itoa(c.Year)
}

// Render lays out the month in full weeks starting on weekStart.
func (c Cursor) Render(weekStart time.Weekday) Grid {
	first := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	n := c.Days()

	weeks := (lead + n + 6) / 7
	grid := make(Grid, weeks)
	for day := 1; day <= n; day++ {
		idx := lead + day - 1
		grid[idx/7][idx%7] = day
	}
	return grid
}

// Select combines the cursor with day into a concrete date.
func (c Cursor) Select(day int) (time.Time, error) {
	if day < 1 || day > c.Days() {
		return time.Time{}, ErrDayOutOfRange
	}
	return time.Date(c.Year, c.Month, day, 0, 0, 0, 0, time.UTC), nil
}

// Position returns the week row and column of day in g, or ok=false.
func (g Grid) Position(day int) (row, col int, ok bool) {
	for r, week := range g {
		for c, d := range week {
			if d == day && d != 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Weekdays returns two-letter column headings starting at weekStart.
func Weekdays(weekStart time.Weekday) [7]string {
	var out [7]string
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7).String()[:2]
	}
	return out
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month normalises to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Today returns the current date (midnight UTC) according to now.
func Today(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return dateOf(now())
}

// FormatDate renders a date back into "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
