// Package agenda is the categorization engine: it folds a flat task
// list into the rolling 7-day window of ordered buckets the
// presentation layers render.
package agenda

import (
	"github.com/hay-kot/weekplan/internal/core/task"
)

// Item is either a real task or an ephemeral per-day virtual instance
// of a daily-recurring task. Virtual instances share the source task's
// ID, are never persisted, and carry their own completion visibility.
type Item struct {
	Task task.Task

	// Virtual marks a per-day instance of a daily-recurring task.
	Virtual bool
	// Offset is the day offset 0..6 a virtual instance belongs to.
	Offset int

	// completed is the display completion, which for virtual instances
	// differs from the source task's flag.
	completed bool
}

// Real wraps a task as a display item.
func Real(t task.Task) Item {
	return Item{Task: t, completed: t.Completed}
}

// VirtualInstance creates the per-day copy of a daily-recurring task.
func VirtualInstance(t task.Task, offset int, completed bool) Item {
	return Item{Task: t, Virtual: true, Offset: offset, completed: completed}
}

// Completed is the completion state to display for this item. For a
// virtual instance only the offset on which completion actually
// happened reads true; every other day's instance reads pending.
func (it Item) Completed() bool {
	return it.completed
}
