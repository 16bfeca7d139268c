package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/weekplan/internal/core/calendar"
	"github.com/hay-kot/weekplan/internal/core/task"
)

const msPerMinute = 60 * 1000

func intp(v int) *int                         { return &v }
func timep(t time.Time) *time.Time            { return &t }
func labelp(l calendar.Label) *calendar.Label { return &l }

func ms(hour, minute int) *int {
	v := (hour*60 + minute) * msPerMinute
	return &v
}

// Monday 2024-03-04.
func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.Local)
}

func TestNextTriggerPreconditions(t *testing.T) {
	now := at(8, 0)

	t.Run("no due time", func(t *testing.T) {
		_, ok := NextTrigger(task.Task{ReminderLead: intp(15)}, now)
		assert.False(t, ok)
	})

	t.Run("no lead", func(t *testing.T) {
		_, ok := NextTrigger(task.Task{DueTime: ms(9, 0)}, now)
		assert.False(t, ok)
	})
}

func TestNextTriggerUnbound(t *testing.T) {
	base := task.Task{DueTime: ms(9, 0), ReminderLead: intp(15)}

	t.Run("before due time fires today", func(t *testing.T) {
		got, ok := NextTrigger(base, at(8, 0))
		require.True(t, ok)
		assert.Equal(t, at(8, 45), got)
	})

	t.Run("after due time fires tomorrow", func(t *testing.T) {
		got, ok := NextTrigger(base, at(9, 10))
		require.True(t, ok)
		assert.Equal(t, at(8, 45).AddDate(0, 0, 1), got)
	})

	t.Run("inside the lead window fires tomorrow", func(t *testing.T) {
		// Due time not yet passed, but the lead-adjusted trigger is.
		got, ok := NextTrigger(base, at(8, 50))
		require.True(t, ok)
		assert.Equal(t, at(8, 45).AddDate(0, 0, 1), got)
	})

	t.Run("zero lead fires at the due time", func(t *testing.T) {
		got, ok := NextTrigger(task.Task{DueTime: ms(9, 0), ReminderLead: intp(0)}, at(8, 0))
		require.True(t, ok)
		assert.Equal(t, at(9, 0), got)
	})
}

func TestNextTriggerWeekdayBound(t *testing.T) {
	t.Run("monday to wednesday", func(t *testing.T) {
		tk := task.Task{DueTime: ms(10, 0), ReminderLead: intp(0), Day: labelp(calendar.Wednesday)}
		got, ok := NextTrigger(tk, at(8, 0))
		require.True(t, ok)
		assert.Equal(t, at(10, 0).AddDate(0, 0, 2), got)
	})

	t.Run("today still ahead stays today", func(t *testing.T) {
		tk := task.Task{DueTime: ms(10, 0), ReminderLead: intp(0), Day: labelp(calendar.Monday)}
		got, ok := NextTrigger(tk, at(8, 0))
		require.True(t, ok)
		assert.Equal(t, at(10, 0), got)
	})

	t.Run("today already passed wraps a full week", func(t *testing.T) {
		tk := task.Task{DueTime: ms(10, 0), ReminderLead: intp(0), Day: labelp(calendar.Monday)}
		got, ok := NextTrigger(tk, at(11, 0))
		require.True(t, ok)
		assert.Equal(t, at(10, 0).AddDate(0, 0, 7), got)
	})
}

func TestNextTriggerDueDate(t *testing.T) {
	t.Run("due date overrides the weekday label", func(t *testing.T) {
		friday := time.Date(2024, 3, 8, 0, 0, 0, 0, time.Local)
		tk := task.Task{
			DueTime:      ms(14, 0),
			ReminderLead: intp(30),
			DueDate:      timep(friday),
			Day:          labelp(calendar.Tuesday),
		}
		got, ok := NextTrigger(tk, at(8, 0))
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 8, 13, 30, 0, 0, time.Local), got)
	})

	t.Run("stale due date advances up to two days", func(t *testing.T) {
		yesterday := time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local)
		tk := task.Task{DueTime: ms(9, 0), ReminderLead: intp(0), DueDate: timep(yesterday)}
		got, ok := NextTrigger(tk, at(8, 0))
		require.True(t, ok)
		assert.Equal(t, at(9, 0), got, "one-day advance recovers yesterday's date")
	})

	t.Run("due date too far gone degrades to one hour out", func(t *testing.T) {
		lastMonth := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
		tk := task.Task{DueTime: ms(9, 0), ReminderLead: intp(0), DueDate: timep(lastMonth)}
		now := at(8, 0)
		got, ok := NextTrigger(tk, now)
		require.True(t, ok)
		assert.Equal(t, now.Add(time.Hour), got)
	})
}

func TestNextTriggerDailyMask(t *testing.T) {
	days := task.DaySet(0).Add(time.Tuesday).Add(time.Thursday)
	tk := task.Task{
		DueTime:      ms(9, 0),
		ReminderLead: intp(15),
		Recurring:    true,
		Recurrence:   task.RecurDaily,
		ReminderDays: days,
	}

	t.Run("today not in mask means nothing today", func(t *testing.T) {
		_, ok := NextTrigger(tk, at(8, 0)) // Monday
		assert.False(t, ok)
	})

	t.Run("today in mask fires normally", func(t *testing.T) {
		tuesday := at(8, 0).AddDate(0, 0, 1)
		got, ok := NextTrigger(tk, tuesday)
		require.True(t, ok)
		assert.Equal(t, at(8, 45).AddDate(0, 0, 1), got)
	})

	t.Run("empty mask means every day", func(t *testing.T) {
		everyday := tk
		everyday.ReminderDays = 0
		got, ok := NextTrigger(everyday, at(8, 0))
		require.True(t, ok)
		assert.Equal(t, at(8, 45), got)
	})
}

func TestNextTriggerAlwaysFuture(t *testing.T) {
	now := at(12, 0)
	fixtures := []task.Task{
		{DueTime: ms(9, 0), ReminderLead: intp(15)},
		{DueTime: ms(23, 59), ReminderLead: intp(0)},
		{DueTime: ms(0, 0), ReminderLead: intp(120)},
		{DueTime: ms(9, 0), ReminderLead: intp(0), Day: labelp(calendar.Monday)},
		{DueTime: ms(9, 0), ReminderLead: intp(0), DueDate: timep(time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local))},
	}
	for _, tk := range fixtures {
		got, ok := NextTrigger(tk, now)
		require.True(t, ok)
		assert.True(t, got.After(now), "trigger %s not after %s", got, now)
	}
}

func TestStateTransitions(t *testing.T) {
	t.Run("happy path with snooze loop", func(t *testing.T) {
		s := StateUnscheduled
		for _, to := range []State{StateScheduled, StateFired, StateSnoozed, StateScheduled, StateFired, StateCompleted} {
			next, err := s.Transition(to)
			require.NoError(t, err, "%s -> %s", s, to)
			s = next
		}
		assert.True(t, s.Terminal())
	})

	t.Run("reschedule replaces in place", func(t *testing.T) {
		next, err := StateScheduled.Transition(StateScheduled)
		require.NoError(t, err)
		assert.Equal(t, StateScheduled, next)
	})

	t.Run("invalid transitions rejected", func(t *testing.T) {
		for _, tc := range []struct{ from, to State }{
			{StateUnscheduled, StateFired},
			{StateScheduled, StateSnoozed},
			{StateCompleted, StateScheduled},
			{StateCancelled, StateFired},
			{StateDeleted, StateScheduled},
		} {
			next, err := tc.from.Transition(tc.to)
			assert.ErrorIs(t, err, ErrBadTransition, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, next)
		}
	})
}
