// Package calendar provides the day-label enum and the today-relative
// weekday arithmetic the categorization engine is built on.
//
// All arithmetic is calendar-local: callers pass wall-clock instants
// and the package never converts across time zones.
package calendar

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrUnknownLabel is returned when a persisted day label cannot be
// parsed. Callers are expected to fail closed (route the task to the
// waiting bucket) and surface the warning rather than drop the task.
var ErrUnknownLabel = errors.New("unknown day label")

// Label is the closed set of day labels a task can carry: the three
// pseudo-labels followed by the seven weekdays. The ordering mirrors
// the 0..9 index space of the legacy data model, so persisted values
// and the enum never disagree about which index is which.
type Label int

const (
	None Label = iota
	Immediate
	Soon
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var labelNames = [...]string{
	"none",
	"immediate",
	"soon",
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// String returns the canonical lowercase name. Display strings are the
// presentation layer's concern; the engine only ever sees these.
func (l Label) String() string {
	if l < None || l > Saturday {
		return fmt.Sprintf("label(%d)", int(l))
	}
	return labelNames[l]
}

// IsWeekday reports whether l names a concrete weekday rather than one
// of the pseudo-labels.
func (l Label) IsWeekday() bool {
	return l >= Sunday && l <= Saturday
}

// Weekday converts a weekday label to its time.Weekday. Calling it on
// a pseudo-label is a programming error; it panics to keep the closed
// enum honest.
func (l Label) Weekday() time.Weekday {
	if !l.IsWeekday() {
		panic(fmt.Sprintf("calendar: %v is not a weekday label", l))
	}
	return time.Weekday(l - Sunday)
}

// LabelFor returns the weekday label for a time.Weekday.
func LabelFor(d time.Weekday) Label {
	return Sunday + Label(d)
}

// ParseLabel parses a canonical label name. Unknown input returns
// ErrUnknownLabel wrapped with the offending value.
func ParseLabel(s string) (Label, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range labelNames {
		if n == name {
			return Label(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AtTime places a time-of-day offset (milliseconds since midnight) on
// the calendar date of day.
func AtTime(day time.Time, msSinceMidnight int) time.Time {
	return StartOfDay(day).Add(time.Duration(msSinceMidnight) * time.Millisecond)
}

// OffsetOf returns the today-relative offset 0..6 of the next
// occurrence of a weekday label, 0 when it is today.
func OffsetOf(l Label, now time.Time) int {
	if !l.IsWeekday() {
		panic(fmt.Sprintf("calendar: %v is not a weekday label", l))
	}
	return (int(l.Weekday()) - int(now.Weekday()) + 7) % 7
}

// LabelForOffset is the inverse of OffsetOf: the weekday label sitting
// at a 0..6 offset from today, wrapping around the week.
func LabelForOffset(offset int, now time.Time) Label {
	return LabelFor(time.Weekday((int(now.Weekday()) + offset) % 7))
}

// DaysBetween returns the whole local days from now's date to date's
// date; negative when date is in the past. Rounding absorbs the 23h
// and 25h days around DST transitions.
func DaysBetween(date, now time.Time) int {
	a := StartOfDay(date)
	b := StartOfDay(now)
	return int(math.Round(a.Sub(b).Hours() / 24))
}

// WithinNextWeek reports whether date falls inside the rolling 7-day
// window starting today.
func WithinNextWeek(date, now time.Time) bool {
	d := DaysBetween(date, now)
	return d >= 0 && d < 7
}
