package resource

import "time"

// Status is the lifecycle position of a store.
type Status int

const (
	// Idle is the state before the first activation.
	Idle Status = iota
	// Loading means an activation is in flight.
	Loading
	// Ready means the newest activation succeeded.
	Ready
	// Failed means the newest activation failed.
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of a store. Data is the last committed value and is
// kept across a later failure; HasData says whether any activation ever
// succeeded.
type State[T any] struct {
	Data       T
	HasData    bool
	Status     Status
	Err        error
	Generation uint64
	UpdatedAt  time.Time

	seq uint64
}

// Loading reports whether an activation is in flight.
func (s State[T]) Loading() bool {
	return s.Status == Loading
}

// ErrorMessage returns the failure text, or "" when the store is not failed.
func (s State[T]) ErrorMessage() string {
	if s.Status != Failed || s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
