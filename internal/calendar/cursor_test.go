package calendar

import (
	"errors"
	"testing"
	"time"

	"agenda/internal/model"
)

func TestAdvanceRollover(t *testing.T) {
	tests := []struct {
		name  string
		in    Cursor
		delta int
		want  Cursor
	}{
		{"December forward", Cursor{2025, time.December}, 1, Cursor{2026, time.January}},
		{"January backward", Cursor{2025, time.January}, -1, Cursor{2024, time.December}},
		{"mid-year forward", Cursor{2025, time.June}, 1, Cursor{2025, time.July}},
		{"thirteen months back", Cursor{2025, time.March}, -13, Cursor{2024, time.February}},
		{"two years forward", Cursor{2025, time.November}, 24, Cursor{2027, time.November}},
		{"zero", Cursor{2025, time.May}, 0, Cursor{2025, time.May}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Advance(tt.delta); got != tt.want {
				t.Errorf("Advance(%d) = %+v, want %+v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestAdvanceInverse(t *testing.T) {
	for year := 1999; year <= 2001; year++ {
		for m := time.January; m <= time.December; m++ {
			c := Cursor{Year: year, Month: m}
			if got := c.Advance(1).Advance(-1); got != c {
				t.Errorf("Advance(+1,-1) on %+v = %+v", c, got)
			}
			if got := c.Advance(-1).Advance(1); got != c {
				t.Errorf("Advance(-1,+1) on %+v = %+v", c, got)
			}
		}
	}
}

func TestRenderMondayFirst(t *testing.T) {
	// September 2025 starts on a Monday and has 30 days.
	g := Cursor{2025, time.September}.Render(time.Monday)
	if len(g) != 5 {
		t.Fatalf("weeks = %d, want 5", len(g))
	}
	if g[0] != [7]int{1, 2, 3, 4, 5, 6, 7} {
		t.Errorf("first week = %v", g[0])
	}
	if g[4] != [7]int{29, 30, 0, 0, 0, 0, 0} {
		t.Errorf("last week = %v", g[4])
	}
}

func TestRenderLeadingPlaceholders(t *testing.T) {
	// February 2026 starts on a Sunday: six blanks before day 1 when weeks
	// start on Monday, none when they start on Sunday.
	c := Cursor{2026, time.February}

	mon := c.Render(time.Monday)
	if mon[0] != [7]int{0, 0, 0, 0, 0, 0, 1} {
		t.Errorf("monday-first first week = %v", mon[0])
	}
	if len(mon) != 5 {
		t.Errorf("monday-first weeks = %d, want 5", len(mon))
	}

	sun := c.Render(time.Sunday)
	if sun[0] != [7]int{1, 2, 3, 4, 5, 6, 7} {
		t.Errorf("sunday-first first week = %v", sun[0])
	}
	if len(sun) != 4 {
		t.Errorf("sunday-first weeks = %d, want 4", len(sun))
	}
}

func TestRenderCoversEveryDayOnce(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		c := Cursor{2024, m}
		seen := make(map[int]bool)
		for _, week := range c.Render(time.Monday) {
			for _, d := range week {
				if d == 0 {
					continue
				}
				if seen[d] {
					t.Fatalf("%s: day %d appears twice", c.Title(), d)
				}
				seen[d] = true
			}
		}
		if len(seen) != c.Days() {
			t.Errorf("%s: %d days rendered, want %d", c.Title(), len(seen), c.Days())
		}
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestSelectRoundTrip(t *testing.T) {
	for _, text := range []string{"2025-09-16", "2024-02-29", "2025-01-01", "2025-12-31"} {
		seed, err := ParseDate(text)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", text, err)
		}
		c := NewCursor(seed)
		got, err := c.Select(seed.Day())
		if err != nil {
			t.Fatalf("Select(%d): %v", seed.Day(), err)
		}
		if FormatDate(got) != text {
			t.Errorf("round trip %q -> %q", text, FormatDate(got))
		}
	}
}

func TestSelectOutOfRange(t *testing.T) {
	c := Cursor{2025, time.February}
	for _, day := range []int{0, -1, 29, 31} {
		if _, err := c.Select(day); !errors.Is(err, ErrDayOutOfRange) {
			t.Errorf("Select(%d) err = %v, want ErrDayOutOfRange", day, err)
		}
	}
}

func TestSeedFromText(t *testing.T) {
	now := time.Date(2025, 9, 16, 15, 4, 0, 0, time.UTC)

	if got := SeedFromText(" 2024-02-29 ", now); FormatDate(got) != "2024-02-29" {
		t.Errorf("valid text seed = %s", FormatDate(got))
	}
	for _, bad := range []string{"", "2025-02-30", "16/09/2025"} {
		if got := SeedFromText(bad, now); FormatDate(got) != "2025-09-16" {
			t.Errorf("SeedFromText(%q) = %s, want fallback to now", bad, FormatDate(got))
		}
	}
}

func TestWeekdays(t *testing.T) {
	mon := Weekdays(time.Monday)
	if mon[0] != "Mo" || mon[6] != "Su" {
		t.Errorf("monday headings = %v", mon)
	}
	sun := Weekdays(time.Sunday)
	if sun[0] != "Su" || sun[6] != "Sa" {
		t.Errorf("sunday headings = %v", sun)
	}
}

func TestGridPosition(t *testing.T) {
	g := Cursor{2025, time.September}.Render(time.Monday)
	row, col, ok := g.Position(16)
	if !ok || row != 2 || col != 1 {
		t.Errorf("Position(16) = (%d,%d,%v), want (2,1,true)", row, col, ok)
	}
	if _, _, ok := g.Position(31); ok {
		t.Error("Position(31) found in a 30-day month")
	}
}

func TestTitle(t *testing.T) {
	if got := (Cursor{2025, time.September}).Title(); got != "September 2025" {
		t.Errorf("Title = %q", got)
	}
}

func TestDateTextMatchesEventLayout(t *testing.T) {
	d, err := ParseDate("2025-09-16")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want, _ := time.Parse(model.DateLayout, "2025-09-16")
	if !d.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", d, want)
	}
	if got := FormatDate(d); got != want.Format(model.DateLayout) {
		t.Errorf("FormatDate = %q", got)
	}
	// Picker output must be accepted unchanged by the event store's parser.
	if _, err := ParseDate(FormatDate(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Errorf("round trip of year 1: %v", err)
	}
}
