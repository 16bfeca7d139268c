// Package task defines the to-do item domain model shared by the
// engine, the store, and every presentation surface.
package task

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hay-kot/weekplan/internal/core/calendar"
)

// Recurrence is the cadence of a recurring task.
type Recurrence string

const (
	RecurDaily    Recurrence = "daily"
	RecurWeekly   Recurrence = "weekly"
	RecurBiweekly Recurrence = "biweekly"
	RecurMonthly  Recurrence = "monthly"
	RecurYearly   Recurrence = "yearly"
)

// Valid reports whether r names a known cadence.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurDaily, RecurWeekly, RecurBiweekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// DaySet is a weekday bitmask (bit 0 = Sunday). The zero value means
// "every day", matching the legacy reminder-days semantics.
type DaySet uint8

// Has reports whether d includes the weekday.
func (d DaySet) Has(w time.Weekday) bool {
	return d&(1<<uint(w)) != 0
}

// Add returns d with the weekday included.
func (d DaySet) Add(w time.Weekday) DaySet {
	return d | 1<<uint(w)
}

// IsEmpty reports whether no weekday is set (= remind every day).
func (d DaySet) IsEmpty() bool {
	return d == 0
}

// String renders the set as comma-separated weekday indices
// (0=Sunday..6=Saturday), the wire format the store persists. Empty
// set renders as "".
func (d DaySet) String() string {
	if d.IsEmpty() {
		return ""
	}
	idx := make([]int, 0, 7)
	for w := time.Sunday; w <= time.Saturday; w++ {
		if d.Has(w) {
			idx = append(idx, int(w))
		}
	}
	sort.Ints(idx)
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// ParseDaySet parses the comma-separated index form. Blank input
// yields the empty set. Out-of-range indices are an error.
func ParseDaySet(s string) (DaySet, error) {
	var d DaySet
	s = strings.TrimSpace(s)
	if s == "" {
		return d, nil
	}
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("parse day set %q: %w", s, err)
		}
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("parse day set %q: index %d out of range", s, n)
		}
		d = d.Add(time.Weekday(n))
	}
	return d, nil
}

// Task is a single to-do item. Optional fields are pointers so the
// store and the engine agree on "unset" without sentinel values.
type Task struct {
	ID          int64
	Description string

	// DueDate is a calendar date at local midnight; no time component.
	DueDate *time.Time
	// DueTime is milliseconds since local midnight, [0, 86400000).
	DueTime *int
	// Day is the symbolic day label; nil means unset.
	Day *calendar.Label
	// UnknownDay carries a persisted day label that failed to parse.
	// The engine routes such tasks to the waiting bucket and surfaces
	// a warning instead of dropping them. Mutation paths never set it.
	UnknownDay string

	Recurring  bool
	Recurrence Recurrence

	// ReminderLead is minutes before the due time; nil = no reminder,
	// 0 = remind at the due time.
	ReminderLead *int
	// ReminderDays gates daily-recurring reminders per weekday.
	ReminderDays DaySet

	Completed bool
	// CompletedAt is set exactly when Completed transitions to true and
	// cleared when it transitions back. For recurring tasks it tracks
	// only the most recent completion event.
	CompletedAt *time.Time

	// ManualPosition pins the task at an explicit index within its
	// bucket; nil means ordering is computed from DueTime/Priority.
	ManualPosition *int
	// Priority breaks ties among automatic no-time tasks; lower first.
	Priority int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDaily reports whether the task recurs daily.
func (t Task) IsDaily() bool {
	return t.Recurring && t.Recurrence == RecurDaily
}

// HasReminder reports whether a reminder is requested at all.
func (t Task) HasReminder() bool {
	return t.ReminderLead != nil && *t.ReminderLead >= 0 && t.DueTime != nil
}
