package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2024-03-04, 10:30 local.
var monday = time.Date(2024, 3, 4, 10, 30, 0, 0, time.Local)

func TestParseLabel(t *testing.T) {
	t.Run("canonical names", func(t *testing.T) {
		for _, tc := range []struct {
			in   string
			want Label
		}{
			{"none", None},
			{"immediate", Immediate},
			{"soon", Soon},
			{"sunday", Sunday},
			{"saturday", Saturday},
		} {
			got, err := ParseLabel(tc.in)
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got)
		}
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		got, err := ParseLabel("  Wednesday ")
		require.NoError(t, err)
		assert.Equal(t, Wednesday, got)
	})

	t.Run("unknown fails closed", func(t *testing.T) {
		_, err := ParseLabel("someday")
		assert.ErrorIs(t, err, ErrUnknownLabel)
	})
}

func TestOffsetOf(t *testing.T) {
	assert.Equal(t, 0, OffsetOf(Monday, monday))
	assert.Equal(t, 1, OffsetOf(Tuesday, monday))
	assert.Equal(t, 5, OffsetOf(Saturday, monday))
	// Sunday wraps to the end of the rolling week.
	assert.Equal(t, 6, OffsetOf(Sunday, monday))
}

func TestLabelForOffset(t *testing.T) {
	assert.Equal(t, Monday, LabelForOffset(0, monday))
	assert.Equal(t, Thursday, LabelForOffset(3, monday))
	assert.Equal(t, Sunday, LabelForOffset(6, monday))

	// Inverse of OffsetOf for the full week.
	for off := 0; off < 7; off++ {
		assert.Equal(t, off, OffsetOf(LabelForOffset(off, monday), monday))
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(monday.Add(5*time.Hour), monday))
	assert.Equal(t, 1, DaysBetween(monday.AddDate(0, 0, 1), monday))
	assert.Equal(t, -3, DaysBetween(monday.AddDate(0, 0, -3), monday))
	// Time-of-day never affects the distance between dates.
	late := time.Date(2024, 3, 5, 23, 59, 0, 0, time.Local)
	assert.Equal(t, 1, DaysBetween(late, monday))
}

func TestWithinNextWeek(t *testing.T) {
	assert.True(t, WithinNextWeek(monday, monday))
	assert.True(t, WithinNextWeek(monday.AddDate(0, 0, 6), monday))
	assert.False(t, WithinNextWeek(monday.AddDate(0, 0, 7), monday))
	assert.False(t, WithinNextWeek(monday.AddDate(0, 0, -1), monday))
}

func TestAtTime(t *testing.T) {
	got := AtTime(monday, 9*60*60*1000+15*60*1000)
	want := time.Date(2024, 3, 4, 9, 15, 0, 0, time.Local)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)
}

func TestWeekdayRoundTrip(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		l := LabelFor(d)
		require.True(t, l.IsWeekday())
		assert.Equal(t, d, l.Weekday())
	}
	assert.False(t, Soon.IsWeekday())
	assert.False(t, None.IsWeekday())
}
