package reminder

import "time"

// Dispatcher owns the timers behind scheduled reminders, keyed by task
// ID. Scheduling twice for the same task replaces the prior trigger.
// Implementations live outside the core; the engine only drives these
// calls.
type Dispatcher interface {
	// Schedule arms (or re-arms) the reminder for a task at the given
	// instant.
	Schedule(taskID int64, at time.Time)

	// Cancel disarms any pending reminder for the task. Cancelling an
	// unknown task is a no-op.
	Cancel(taskID int64)

	// ScheduleSnooze re-arms a fired reminder at now + SnoozeDelay,
	// bypassing trigger computation.
	ScheduleSnooze(taskID int64)
}

// NopDispatcher discards every call. Useful for read-only commands
// that construct the planner service without a live scheduler.
type NopDispatcher struct{}

func (NopDispatcher) Schedule(int64, time.Time) {}
func (NopDispatcher) Cancel(int64)              {}
func (NopDispatcher) ScheduleSnooze(int64)      {}
