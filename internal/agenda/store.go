// Package agenda holds the in-memory event list: validation of raw form
// input, chronologically ordered insertion and deletion by identity.
package agenda

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	appLog "agenda/internal/log"
	"agenda/internal/model"
)

// Store is the ordered event list owned by the application shell.
// Events are kept sorted by timestamp; equal timestamps keep insertion
// order. Store is not safe for concurrent use.
type Store struct {
	events []model.Event
	newID  func() uuid.UUID
}

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator replaces uuid.New as the identity source.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{newID: uuid.New}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks raw form input without touching any store. All three
// fields are trimmed first; emptiness is checked before the formats.
func Validate(date, timeText, description string) error {
	_, err := parseEntry(date, timeText, description)
	return err
}

// parseEntry validates the input and returns the event it describes,
// without an identity.
func parseEntry(date, timeText, description string) (model.Event, error) {
	date = strings.TrimSpace(date)
	timeText = strings.TrimSpace(timeText)
	description = strings.TrimSpace(description)

	if date == "" || timeText == "" || description == "" {
		return model.Event{}, &ValidationError{Kind: EmptyField}
	}

	d, err := time.Parse(model.DateLayout, date)
	if err != nil || d.Year() < 1 {
		return model.Event{}, &ValidationError{Kind: BadDateFormat, Input: date}
	}
	// "15" accepts one or two hour digits and rejects hours past 23.
	clock, err := time.Parse(model.TimeLayout, timeText)
	if err != nil {
		return model.Event{}, &ValidationError{Kind: BadTimeFormat, Input: timeText}
	}

	at := time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	return model.Event{
		At:          at,
		Date:        at.Format(model.DateLayout),
		Time:        at.Format(model.TimeLayout),
		Description: description,
	}, nil
}

// Insert validates the input, appends the new event and re-sorts the list.
// A rejected entry never changes the store.
func (s *Store) Insert(date, timeText, description string) (model.Event, error) {
	ev, err := parseEntry(date, timeText, description)
	if err != nil {
		return model.Event{}, err
	}
	ev.ID = s.newID()

	s.events = append(s.events, ev)
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].At.Before(s.events[j].At)
	})

	appLog.Debug("event inserted", "id", ev.ID, "at", ev.At.Format(model.DateTimeLayout), "count", len(s.events))
	return ev, nil
}

// Remove deletes the event with the given identity. A nil or unknown id
// reports ErrNoSelection and leaves the store unchanged.
func (s *Store) Remove(id uuid.UUID) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNoSelection
	}
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	appLog.Debug("event removed", "id", id, "count", len(s.events))
	return nil
}

// RemoveConfirmed removes id only when the user confirmed the deletion.
// The selection is checked first so an empty selection is reported even if
// no confirmation was asked for.
func (s *Store) RemoveConfirmed(id uuid.UUID, confirmed bool) error {
	if s.indexOf(id) < 0 {
		return ErrNoSelection
	}
	if !confirmed {
		return ErrDeletionNotConfirmed
	}
	return s.Remove(id)
}

// All returns a snapshot of the events in timestamp order.
func (s *Store) All() []model.Event {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	return len(s.events)
}

// Get returns the event with the given identity.
func (s *Store) Get(id uuid.UUID) (model.Event, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Event{}, false
	}
	return s.events[idx], true
}

func (s *Store) indexOf(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}
