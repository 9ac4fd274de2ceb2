package agenda

import "errors"

// Sentinel errors. Every condition is recoverable: the user re-enters input
// or picks a row and tries again.
var (
	ErrEmptyField           = errors.New("agenda: date, time and description are required")
	ErrBadDate              = errors.New("agenda: date must be a real day in YYYY-MM-DD form")
	ErrBadTime              = errors.New("agenda: time must be HH:MM in 24h form")
	ErrNoSelection          = errors.New("agenda: no event selected")
	ErrDeletionNotConfirmed = errors.New("agenda: deletion not confirmed")
)

// Kind classifies a validation failure.
type Kind uint8

const (
	EmptyField Kind = iota + 1
	BadDateFormat
	BadTimeFormat
)

func (k Kind) String() string {
	switch k {
	case EmptyField:
		return "EmptyField"
	case BadDateFormat:
		return "BadDateFormat"
	case BadTimeFormat:
		return "BadTimeFormat"
	default:
		return "Unknown"
	}
}

// ValidationError reports why an entry was rejected. It unwraps to the
// matching sentinel so callers can use errors.Is.
type ValidationError struct {
	Kind  Kind
	Input string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return e.Unwrap().Error()
	}
	return e.Unwrap().Error() + ": " + e.Input
}

func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case EmptyField:
		return ErrEmptyField
	case BadDateFormat:
		return ErrBadDate
	default:
		return ErrBadTime
	}
}

// Notice is the user-facing title and body for err, as shown in the status
// line or a message box.
type Notice struct {
	Title   string
	Message string
}

// NoticeFor maps an agenda error to its user-facing text. Unknown errors
// get a generic notice carrying err's text.
func NoticeFor(err error) Notice {
	switch {
	case errors.Is(err, ErrEmptyField):
		return Notice{"Incomplete fields", "Fill in date, time and description."}
	case errors.Is(err, ErrBadDate):
		return Notice{"Invalid date", "Use the YYYY-MM-DD format (e.g. 2025-09-16)."}
	case errors.Is(err, ErrBadTime):
		return Notice{"Invalid time", "Use the HH:MM 24h format (e.g. 08:30 or 17:45)."}
	case errors.Is(err, ErrNoSelection):
		return Notice{"No selection", "Select an event in the list."}
	case errors.Is(err, ErrDeletionNotConfirmed):
		return Notice{}
	case err == nil:
		return Notice{}
	default:
		return Notice{"Error", err.Error()}
	}
}
