// Package dispatch is the in-process trigger dispatcher: one timer per
// task, armed from computed reminder instants and replaced or
// cancelled as tasks change.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/weekplan/internal/core/reminder"
)

// FireFunc is invoked when a task's reminder comes due. It runs on the
// timer goroutine and must not block.
type FireFunc func(taskID int64, at time.Time)

// Scheduler implements reminder.Dispatcher with in-process timers
// keyed by task ID. Scheduling twice for the same task replaces the
// prior trigger.
type Scheduler struct {
	log  zerolog.Logger
	fire FireFunc

	mu      sync.Mutex
	entries map[int64]*entry
}

var _ reminder.Dispatcher = (*Scheduler)(nil)

type entry struct {
	timer *time.Timer
	state reminder.State
	at    time.Time
}

// NewScheduler creates a scheduler that calls fire on every trigger.
func NewScheduler(logger zerolog.Logger, fire FireFunc) *Scheduler {
	return &Scheduler{
		log:     logger.With().Str("component", "dispatch").Logger(),
		fire:    fire,
		entries: make(map[int64]*entry),
	}
}

// Schedule arms (or re-arms) the reminder for a task.
func (s *Scheduler) Schedule(taskID int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arm(taskID, at)
}

// Cancel disarms any pending reminder for the task. Unknown task IDs
// are a no-op.
func (s *Scheduler) Cancel(taskID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[taskID]
	if !ok {
		return
	}

	e.timer.Stop()
	if next, err := e.state.Transition(reminder.StateCancelled); err == nil {
		e.state = next
	}
	delete(s.entries, taskID)
	s.log.Debug().Int64("task_id", taskID).Msg("reminder cancelled")
}

// ScheduleSnooze re-arms a fired reminder a fixed delay from now,
// bypassing trigger computation entirely.
func (s *Scheduler) ScheduleSnooze(taskID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := time.Now().Add(reminder.SnoozeDelay)
	if e, ok := s.entries[taskID]; ok && e.state == reminder.StateFired {
		if next, err := e.state.Transition(reminder.StateSnoozed); err == nil {
			e.state = next
		}
	}
	s.arm(taskID, at)
}

// State reports the lifecycle state for a task's reminder.
func (s *Scheduler) State(taskID int64) (reminder.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[taskID]
	if !ok {
		return reminder.StateUnscheduled, false
	}
	return e.state, true
}

// Run blocks until the context is cancelled, then stops every timer.
func (s *Scheduler) Run(ctx context.Context) {
	<-ctx.Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		e.timer.Stop()
		delete(s.entries, id)
	}
	s.log.Debug().Msg("scheduler stopped")
}

// arm installs a timer for the task, replacing any existing one.
// Callers hold s.mu.
func (s *Scheduler) arm(taskID int64, at time.Time) {
	if e, ok := s.entries[taskID]; ok {
		e.timer.Stop()
	}

	e := &entry{state: reminder.StateUnscheduled, at: at}
	if prior, ok := s.entries[taskID]; ok {
		e.state = prior.state
	}

	next, err := e.state.Transition(reminder.StateScheduled)
	if err != nil {
		// A fired entry being replaced by a fresh schedule starts a
		// new lifecycle.
		next = reminder.StateScheduled
	}
	e.state = next

	e.timer = time.AfterFunc(time.Until(at), func() { s.onFire(taskID) })
	s.entries[taskID] = e
	s.log.Debug().Int64("task_id", taskID).Time("at", at).Msg("reminder scheduled")
}

func (s *Scheduler) onFire(taskID int64) {
	s.mu.Lock()
	e, ok := s.entries[taskID]
	if !ok {
		s.mu.Unlock()
		return
	}

	next, err := e.state.Transition(reminder.StateFired)
	if err != nil {
		s.mu.Unlock()
		return
	}
	e.state = next
	at := e.at
	s.mu.Unlock()

	s.log.Debug().Int64("task_id", taskID).Msg("reminder fired")
	if s.fire != nil {
		s.fire(taskID, at)
	}
}
