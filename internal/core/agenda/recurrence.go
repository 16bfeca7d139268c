package agenda

import (
	"time"

	"github.com/hay-kot/weekplan/internal/core/task"
)

// AppearsOnOffset reports whether a recurring task shows an instance on
// the given day offset. Daily tasks appear on every offset. Weekly,
// biweekly, monthly and yearly tasks always report true: the source
// system never consulted the cadence when building the week view, and
// that behavior is preserved rather than fixed (cadence-aware
// scheduling would change what users see today).
func AppearsOnOffset(t task.Task, offset int) bool {
	if !t.Recurring {
		return false
	}
	if t.IsDaily() {
		return offset >= 0 && offset < 7
	}
	return true
}

// CompletedOnOffset is the per-day completion visibility rule. A daily
// task's completion is only visible on today's instance (offset 0);
// the other six instances always show pending. Non-daily recurring
// tasks carry a single shared flag, mirrored unchanged to every
// offset.
func CompletedOnOffset(t task.Task, offset int) bool {
	if t.IsDaily() {
		return offset == 0 && t.Completed
	}
	return t.Completed
}

// RemindsOnWeekday reports whether a task's reminder is active on the
// given weekday. An empty mask means remind every day.
func RemindsOnWeekday(t task.Task, w time.Weekday) bool {
	return t.ReminderDays.IsEmpty() || t.ReminderDays.Has(w)
}
