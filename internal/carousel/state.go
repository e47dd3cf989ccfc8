package carousel

import "time"

// Phase is the controller's position in its state machine.
type Phase int

const (
	// PhaseIdle means the owning surface is not visible.
	PhaseIdle Phase = iota
	// PhaseRunning means the surface is visible and the timer may advance.
	PhaseRunning
	// PhaseSuppressed means the user is touching the surface or the cooldown
	// after their last touch has not yet elapsed.
	PhaseSuppressed
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseSuppressed:
		return "suppressed"
	default:
		return "idle"
	}
}

// State is a point-in-time copy of a controller's state.
type State struct {
	// Index is the current index, or -1 when there are no items.
	Index         int
	Len           int
	Active        bool
	Suppressed    bool
	Cyclic        bool
	Interval      time.Duration
	LastAdvanceAt time.Time
}

// Phase derives the state-machine phase.
func (s State) Phase() Phase {
	switch {
	case !s.Active:
		return PhaseIdle
	case s.Suppressed:
		return PhaseSuppressed
	default:
		return PhaseRunning
	}
}

// HasIndex reports whether Index addresses an item.
func (s State) HasIndex() bool {
	return s.Index >= 0 && s.Index < s.Len
}
