package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	appLog "agenda/internal/log"
	"agenda/internal/model"
)

// Decode reads a calendar written by Export back into events, in file
// order. It is used to verify exports; the agenda never loads state at
// startup.
func Decode(r io.Reader) ([]model.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0)
	for _, comp := range cal.Events() {
		ev, perr := decodeVEvent(comp)
		if perr != nil {
			appLog.Error("ics vevent decode failed", perr)
			return nil, perr
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeVEvent(ve *ical.VEvent) (model.Event, error) {
	var out model.Event

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	id, err := uuid.Parse(strings.TrimSuffix(uidProp.Value, "@"+uidDomain))
	if err != nil {
		return out, fmt.Errorf("UID %q: %w", uidProp.Value, err)
	}
	out.ID = id

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Description = p.Value
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return out, errors.New("missing DTSTART")
	}
	at, err := parseICSTime(startProp.Value)
	if err != nil {
		return out, fmt.Errorf("DTSTART %q: %w", startProp.Value, err)
	}
	out.At = at
	out.Date = at.Format(model.DateLayout)
	out.Time = at.Format(model.TimeLayout)
	return out, nil
}

// parseICSTime parses a floating or UTC date-time into a UTC wall-clock
// value.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "Z") {
		return time.Parse(utcLayout, v)
	}
	return time.Parse(floatingLayout, v)
}
