// Package reminder computes when a task's reminder should fire and
// models the lifecycle of a scheduled trigger. The calculator is pure;
// actual timer ownership lives behind the Dispatcher interface.
package reminder

import (
	"time"

	"github.com/hay-kot/weekplan/internal/core/calendar"
	"github.com/hay-kot/weekplan/internal/core/task"
)

// SnoozeDelay is the fixed offset applied when a fired reminder is
// snoozed. Snoozing bypasses NextTrigger entirely.
const SnoozeDelay = 5 * time.Minute

// NextTrigger returns the next instant the task's reminder should
// fire, or false when no reminder applies. The result is always
// strictly after now.
//
// A daily task with a weekday mask is "today or nothing": when today
// is not in the mask the caller is expected to ask again tomorrow
// rather than have the calculator search forward.
func NextTrigger(t task.Task, now time.Time) (time.Time, bool) {
	if !t.HasReminder() {
		return time.Time{}, false
	}
	if t.IsDaily() && !t.ReminderDays.IsEmpty() && !t.ReminderDays.Has(now.Weekday()) {
		return time.Time{}, false
	}

	lead := time.Duration(*t.ReminderLead) * time.Minute
	due := calendar.AtTime(now, *t.DueTime)

	switch {
	case t.DueDate != nil:
		due = calendar.AtTime(*t.DueDate, *t.DueTime)

	case t.Day != nil && t.Day.IsWeekday():
		advance := calendar.OffsetOf(*t.Day, now)
		if advance == 0 && !due.After(now) {
			advance = 7
		}
		due = due.AddDate(0, 0, advance)

	default:
		// No date binding at all: a due time already behind us today
		// means tomorrow's occurrence.
		if !due.After(now) {
			due = due.AddDate(0, 0, 1)
		}
	}

	trigger := due.Add(-lead)

	// The lead subtraction (or a stale due date) can still land the
	// trigger in the past. Nudge forward a day at most twice, then
	// degrade to now+1h rather than drop a requested reminder.
	for i := 0; i < 2 && !trigger.After(now); i++ {
		trigger = trigger.AddDate(0, 0, 1)
	}
	if !trigger.After(now) {
		trigger = now.Add(time.Hour)
	}
	return trigger, true
}
