// Package ics writes the agenda snapshot as an iCalendar file.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"agenda/internal/config"
	appLog "agenda/internal/log"
	"agenda/internal/model"
)

const (
	ProductID = "-//agenda//Personal Agenda//EN"
	uidDomain = "agenda"

	// Events carry no duration; exported entries span one hour.
	defaultDuration = time.Hour

	// Floating date-time: no TZID and no trailing Z, so calendar clients
	// show the wall-clock time the user typed.
	floatingLayout = "20060102T150405"
	utcLayout      = "20060102T150405Z"
)

// Export serialises events as a VCALENDAR to w. now stamps DTSTAMP.
func Export(w io.Writer, events []model.Event, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetName("Agenda")

	stamp := now.UTC().Format(utcLayout)
	for _, ev := range events {
		if ev.Description == "" {
			return fmt.Errorf("ics: event %s has no description", ev.ID)
		}
		vev := cal.AddEvent(UID(ev))
		vev.SetProperty(ical.ComponentPropertyDtstamp, stamp)
		vev.SetProperty(ical.ComponentPropertyDtStart, ev.At.Format(floatingLayout))
		vev.SetProperty(ical.ComponentPropertyDtEnd, ev.At.Add(defaultDuration).Format(floatingLayout))
		vev.SetSummary(ev.Description)
	}

	return cal.SerializeTo(w)
}

// ExportFile writes the snapshot to path atomically (temp file + rename,
// 0600).
func ExportFile(path string, events []model.Event, now time.Time) error {
	if path == "" {
		return errors.New("ics: export path is empty")
	}

	var buf bytes.Buffer
	if err := Export(&buf, events, now); err != nil {
		return err
	}
	if err := config.WriteFileAtomic(path, ".agenda-export-*.tmp", buf.Bytes()); err != nil {
		appLog.Error("ics export failed", err, "path", path)
		return fmt.Errorf("ics: write %s: %w", path, err)
	}

	appLog.Info("ics export completed", "path", path, "event_count", len(events))
	return nil
}

// UID is the iCalendar UID for ev.
func UID(ev model.Event) string {
	return ev.ID.String() + "@" + uidDomain
}
