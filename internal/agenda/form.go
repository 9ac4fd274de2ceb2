package agenda

import "agenda/internal/model"

// FormState is the lifecycle of one pending entry.
type FormState uint8

const (
	FormEmpty FormState = iota
	FormValidating
	FormRejected
	FormAccepted
)

func (s FormState) String() string {
	switch s {
	case FormEmpty:
		return "empty"
	case FormValidating:
		return "validating"
	case FormRejected:
		return "rejected"
	case FormAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// Form holds the raw text of the entry being typed.
//
// Submitting moves it through Validating to Rejected (all fields kept) or
// Accepted (description cleared, date and time kept for the next entry).
// A verdict is held until the next edit or submit: editing any field puts
// the form back to Empty with the other fields retained, and submitting
// again starts a new Validating round from the retained text.
type Form struct {
	Date        string
	Time        string
	Description string

	state   FormState
	lastErr error
}

// State returns the form's current state.
func (f *Form) State() FormState { return f.state }

// Err returns the rejection reason of the last submit, if any.
func (f *Form) Err() error { return f.lastErr }

// SetDate, SetTime and SetDescription edit a field and reset the verdict.
func (f *Form) SetDate(v string) {
	f.Date = v
	f.touch()
}

func (f *Form) SetTime(v string) {
	f.Time = v
	f.touch()
}

func (f *Form) SetDescription(v string) {
	f.Description = v
	f.touch()
}

func (f *Form) touch() {
	f.state = FormEmpty
	f.lastErr = nil
}

// Submit inserts the entry into s.
func (f *Form) Submit(s *Store) (model.Event, error) {
	f.state = FormValidating
	ev, err := s.Insert(f.Date, f.Time, f.Description)
	if err != nil {
		f.state = FormRejected
		f.lastErr = err
		return model.Event{}, err
	}
	f.state = FormAccepted
	f.lastErr = nil
	f.Description = ""
	return ev, nil
}
