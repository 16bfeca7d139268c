package reminder

import "fmt"

// ErrBadTransition is returned when a lifecycle transition is not
// permitted from the current state.
var ErrBadTransition = fmt.Errorf("reminder: invalid state transition")

// State is the lifecycle stage of one task's scheduled reminder.
type State string

const (
	StateUnscheduled State = "unscheduled"
	StateScheduled   State = "scheduled"
	StateFired       State = "fired"
	StateSnoozed     State = "snoozed"
	StateCompleted   State = "completed"
	StateDeleted     State = "deleted"
	StateCancelled   State = "cancelled"
)

// transitions lists the permitted next states. Scheduled → Scheduled
// covers the idempotent replace-on-reschedule case. Completed, Deleted
// and Cancelled are terminal.
var transitions = map[State][]State{
	StateUnscheduled: {StateScheduled},
	StateScheduled:   {StateScheduled, StateFired, StateCompleted, StateDeleted, StateCancelled},
	StateFired:       {StateSnoozed, StateCompleted, StateDeleted, StateCancelled},
	StateSnoozed:     {StateScheduled},
}

// Transition validates and applies a lifecycle change, returning the
// new state or ErrBadTransition.
func (s State) Transition(to State) (State, error) {
	for _, next := range transitions[s] {
		if next == to {
			return to, nil
		}
	}
	return s, fmt.Errorf("%w: %s -> %s", ErrBadTransition, s, to)
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}
