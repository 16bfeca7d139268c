package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/core/calendar"
	"github.com/hay-kot/weekplan/internal/core/task"
	"github.com/hay-kot/weekplan/internal/weekplan"
	"github.com/hay-kot/weekplan/pkg/iojson"
)

type NewCmd struct {
	flags *Flags
	app   *weekplan.App

	// Command-specific flags
	desc       string
	due        string
	clock      string
	day        string
	recur      string
	lead       int
	remindDays string
	priority   int
	fromJSON   string
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags, app *weekplan.App) *NewCmd {
	return &NewCmd{flags: flags, app: app}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create a task",
		UsageText: "weekplan new [options]",
		Description: `Creates a task. When --desc is omitted, an interactive form
prompts for input.

A reminder is armed when a due time is set and a lead is given (or the
configured default applies). Use --from-json to import tasks in bulk:

  weekplan new --from-json tasks.json
  cat tasks.json | weekplan new --from-json ""`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "desc",
				Aliases:     []string{"d"},
				Usage:       "task description",
				Destination: &cmd.desc,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due date (YYYY-MM-DD)",
				Destination: &cmd.due,
			},
			&cli.StringFlag{
				Name:        "time",
				Usage:       "due time of day (HH:MM)",
				Destination: &cmd.clock,
			},
			&cli.StringFlag{
				Name:        "day",
				Usage:       "day label (monday..sunday, immediate, soon, none)",
				Destination: &cmd.day,
			},
			&cli.StringFlag{
				Name:        "recur",
				Usage:       "recurrence (daily, weekly, biweekly, monthly, yearly)",
				Destination: &cmd.recur,
			},
			&cli.IntFlag{
				Name:        "lead",
				Usage:       "reminder lead in minutes (0 = at due time)",
				Value:       -1,
				Destination: &cmd.lead,
			},
			&cli.StringFlag{
				Name:        "remind-days",
				Usage:       "weekdays a daily reminder is active (e.g. mon,wed,fri)",
				Destination: &cmd.remindDays,
			},
			&cli.IntFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "ordering priority (lower sorts first)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "from-json",
				Aliases:     []string{"f"},
				Usage:       "import tasks from a JSON file (or stdin when empty)",
				Destination: &cmd.fromJSON,
			},
		},
		Action: cmd.run,
	})

	return app
}

// importTask is the JSON import shape; field names mirror the `ls
// --json` output.
type importTask struct {
	Description string `json:"description"`
	DueDate     string `json:"due_date,omitempty"`
	DueTime     string `json:"due_time,omitempty"`
	Day         string `json:"day,omitempty"`
	Recurrence  string `json:"recurrence,omitempty"`
	Lead        *int   `json:"lead,omitempty"`
	RemindDays  string `json:"remind_days,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	if c.IsSet("from-json") {
		return cmd.runImport(ctx, c)
	}

	if cmd.desc == "" {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	var lead *int
	switch {
	case c.IsSet("lead") && cmd.lead >= 0:
		lead = &cmd.lead
	case cmd.clock != "" && cmd.lead < 0:
		// A due time without an explicit lead gets the configured
		// default.
		v := cmd.flags.Config.Reminders.DefaultLead
		lead = &v
	}

	t, err := buildTask(importTask{
		Description: cmd.desc,
		DueDate:     cmd.due,
		DueTime:     cmd.clock,
		Day:         cmd.day,
		Recurrence:  cmd.recur,
		Lead:        lead,
		RemindDays:  cmd.remindDays,
		Priority:    cmd.priority,
	})
	if err != nil {
		return err
	}

	if err := cmd.app.Planner.Create(ctx, &t); err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Created task %d\n", t.ID)
	return nil
}

func (cmd *NewCmd) runImport(ctx context.Context, c *cli.Command) error {
	imports, err := iojson.Read[[]importTask](cmd.fromJSON)
	if err != nil {
		return err
	}

	for _, in := range imports {
		t, err := buildTask(in)
		if err != nil {
			return fmt.Errorf("task %q: %w", in.Description, err)
		}
		if err := cmd.app.Planner.Create(ctx, &t); err != nil {
			return fmt.Errorf("task %q: %w", in.Description, err)
		}
	}

	fmt.Fprintf(c.Root().Writer, "Imported %d task(s)\n", len(imports))
	return nil
}

// buildTask parses the user-facing fields into a task.
func buildTask(in importTask) (task.Task, error) {
	t := task.Task{
		Description: strings.TrimSpace(in.Description),
		Priority:    in.Priority,
	}

	if in.DueDate != "" {
		d, err := parseDate(in.DueDate)
		if err != nil {
			return task.Task{}, err
		}
		t.DueDate = &d
	}

	if in.DueTime != "" {
		ms, err := parseClock(in.DueTime)
		if err != nil {
			return task.Task{}, err
		}
		t.DueTime = &ms
	}

	if in.Day != "" {
		label, err := parseDay(in.Day)
		if err != nil {
			return task.Task{}, err
		}
		t.Day = &label
	}

	if in.Recurrence != "" {
		t.Recurring = true
		t.Recurrence = task.Recurrence(in.Recurrence)
	}

	t.ReminderLead = in.Lead

	if in.RemindDays != "" {
		days, err := parseRemindDays(in.RemindDays)
		if err != nil {
			return task.Task{}, err
		}
		t.ReminderDays = days
	}

	return t, nil
}

// parseRemindDays accepts weekday names ("mon,wed" or "monday") or the
// persisted index form ("1,3").
func parseRemindDays(s string) (task.DaySet, error) {
	var days task.DaySet
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		if n, err := strconv.Atoi(part); err == nil {
			if n < 0 || n > 6 {
				return 0, fmt.Errorf("weekday index %d out of range", n)
			}
			days = days.Add(time.Weekday(n))
			continue
		}

		matched := false
		for w := time.Sunday; w <= time.Saturday; w++ {
			name := strings.ToLower(w.String())
			if part == name || (len(part) >= 3 && strings.HasPrefix(name, part)) {
				days = days.Add(w)
				matched = true
				break
			}
		}
		if !matched {
			return 0, fmt.Errorf("unknown weekday %q", part)
		}
	}
	return days, nil
}

func (cmd *NewCmd) runForm() error {
	dayOptions := []huh.Option[string]{
		huh.NewOption("No day", ""),
		huh.NewOption("Today", calendar.Immediate.String()),
		huh.NewOption("Soon", calendar.Soon.String()),
	}
	for l := calendar.Sunday; l <= calendar.Saturday; l++ {
		dayOptions = append(dayOptions, huh.NewOption(l.String(), l.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}).
				Value(&cmd.desc),
			huh.NewSelect[string]().
				Title("Day").
				Options(dayOptions...).
				Value(&cmd.day),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, optional").
				Validate(optional(func(s string) error {
					_, err := parseDate(s)
					return err
				})).
				Value(&cmd.due),
			huh.NewInput().
				Title("Due time").
				Description("HH:MM, optional").
				Validate(optional(func(s string) error {
					_, err := parseClock(s)
					return err
				})).
				Value(&cmd.clock),
			huh.NewSelect[string]().
				Title("Recurrence").
				Options(
					huh.NewOption("None", ""),
					huh.NewOption("Daily", string(task.RecurDaily)),
					huh.NewOption("Weekly", string(task.RecurWeekly)),
					huh.NewOption("Biweekly", string(task.RecurBiweekly)),
					huh.NewOption("Monthly", string(task.RecurMonthly)),
					huh.NewOption("Yearly", string(task.RecurYearly)),
				).
				Value(&cmd.recur),
		),
	).Run()
}

// optional wraps a validator to accept the empty string.
func optional(validate func(string) error) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}
		return validate(s)
	}
}
