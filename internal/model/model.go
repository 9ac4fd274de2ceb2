package model

import (
	"time"

	"github.com/google/uuid"
)

// Layouts of the text forms an Event carries alongside its timestamp.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// Event is a single agenda entry.
//
// At is always the parse of Date and Time in DateTimeLayout; the two
// representations are produced together and never edited afterwards.
type Event struct {
	// ID is the opaque identity used to delete the entry.
	ID uuid.UUID

	// At is the combined date and time. Timezones are not modelled, so it
	// is expressed in UTC.
	At time.Time

	Date        string // "YYYY-MM-DD"
	Time        string // "HH:MM", 24h
	Description string
}

// Row returns the three display columns of the event table.
func (e Event) Row() []string {
	return []string{e.Date, e.Time, e.Description}
}
