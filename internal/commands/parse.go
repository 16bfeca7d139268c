package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/core/calendar"
)

const dateLayout = "2006-01-02"

// taskIDArg parses the first positional argument as a task ID.
func taskIDArg(c *cli.Command) (int64, error) {
	arg := c.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("task id required")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD calendar date in local time.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// parseClock parses HH:MM into milliseconds since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return (t.Hour()*60 + t.Minute()) * 60 * 1000, nil
}

// parseDay parses a day label name.
func parseDay(s string) (calendar.Label, error) {
	label, err := calendar.ParseLabel(s)
	if err != nil {
		return calendar.None, fmt.Errorf("unknown day %q", s)
	}
	return label, nil
}
