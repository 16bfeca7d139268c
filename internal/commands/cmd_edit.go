package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/core/task"
	"github.com/hay-kot/weekplan/internal/weekplan"
)

type EditCmd struct {
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
	clearDue   bool
	clearTime  bool
	clearLead  bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *weekplan.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Change fields on an existing task",
		UsageText: "weekplan edit [options] <task-id>",
		Description: `Only the flags given are changed; everything else is left as
stored. Reminders re-arm or cancel to match the edited fields.`,
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
				Usage:       "recurrence (daily, weekly, biweekly, monthly, yearly, or 'off')",
				Destination: &cmd.recur,
			},
			&cli.IntFlag{
				Name:        "lead",
				Usage:       "reminder lead in minutes",
				Destination: &cmd.lead,
			},
			&cli.StringFlag{
				Name:        "remind-days",
				Usage:       "weekdays a daily reminder is active",
				Destination: &cmd.remindDays,
			},
			&cli.IntFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "ordering priority",
				Destination: &cmd.priority,
			},
			&cli.BoolFlag{
				Name:        "clear-due",
				Usage:       "remove the due date",
				Destination: &cmd.clearDue,
			},
			&cli.BoolFlag{
				Name:        "clear-time",
				Usage:       "remove the due time (and any reminder)",
				Destination: &cmd.clearTime,
			},
			&cli.BoolFlag{
				Name:        "clear-lead",
				Usage:       "remove the reminder",
				Destination: &cmd.clearLead,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	t, err := cmd.app.Planner.Get(ctx, id)
	if err != nil {
		return err
	}

	if c.IsSet("desc") {
		t.Description = cmd.desc
	}
	if c.IsSet("due") {
		d, err := parseDate(cmd.due)
		if err != nil {
			return err
		}
		t.DueDate = &d
	}
	if c.IsSet("time") {
		ms, err := parseClock(cmd.clock)
		if err != nil {
			return err
		}
		t.DueTime = &ms
	}
	if c.IsSet("day") {
		label, err := parseDay(cmd.day)
		if err != nil {
			return err
		}
		t.Day = &label
		t.UnknownDay = ""
	}
	if c.IsSet("recur") {
		if cmd.recur == "off" {
			t.Recurring = false
			t.Recurrence = ""
			t.ReminderDays = 0
		} else {
			t.Recurring = true
			t.Recurrence = task.Recurrence(cmd.recur)
		}
	}
	if c.IsSet("lead") {
		lead := cmd.lead
		t.ReminderLead = &lead
	}
	if c.IsSet("remind-days") {
		days, err := parseRemindDays(cmd.remindDays)
		if err != nil {
			return err
		}
		t.ReminderDays = days
	}
	if c.IsSet("priority") {
		t.Priority = cmd.priority
	}
	if cmd.clearDue {
		t.DueDate = nil
	}
	if cmd.clearTime {
		t.DueTime = nil
		t.ReminderLead = nil
	}
	if cmd.clearLead {
		t.ReminderLead = nil
	}

	if err := cmd.app.Planner.Update(ctx, t); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Updated task %d\n", id)
	return nil
}
