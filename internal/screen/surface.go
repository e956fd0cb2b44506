// Package screen implements the client views: each screen owns its
// lists, its form and a Surface that carries the state tag and the one
// user-facing failure message.
//
// Screen operations never return API failures.  They land on the Surface
// as a fixed message per operation plus the failure kind; the only error
// an operation returns is ErrBusy, meaning it was not started.
package screen

import (
	"errors"
	"sync"

	"github.com/iliyamo/lab-desk/internal/form"
	"github.com/iliyamo/lab-desk/internal/labapi"
)

// ErrBusy rejects an operation while another one is in flight.
var ErrBusy = errors.New("screen: an operation is already in progress")

// State is the tag of a screen's lifecycle.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Submitting
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Submitting:
		return "submitting"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Surface is safe for concurrent use.
type Surface struct {
	mu      sync.Mutex
	state   State
	message string
	kind    labapi.Kind
}

// begin moves to next and clears the message.  It refuses while Loading
// or Submitting.
func (s *Surface) begin(next State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Loading || s.state == Submitting {
		return false
	}
	s.state = next
	s.message = ""
	s.kind = labapi.KindUnknown
	return true
}

// settle ends the running operation.  A form violation shows its own
// message; any other error shows message.
func (s *Surface) settle(err error, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.state = Ready
		return
	}
	var v *form.Violation
	if errors.As(err, &v) {
		s.message = v.Message
		s.kind = labapi.KindValidation
	} else {
		s.message = message
		s.kind = labapi.KindOf(err)
	}
	s.state = Failed
}

func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Message is empty unless the last operation failed.
func (s *Surface) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Kind classifies the last failure.
func (s *Surface) Kind() labapi.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// Busy reports whether a load or submit is in flight.
func (s *Surface) Busy() bool {
	st := s.State()
	return st == Loading || st == Submitting
}
