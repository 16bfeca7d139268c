package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/core/reminder"
	"github.com/hay-kot/weekplan/internal/dispatch"
	"github.com/hay-kot/weekplan/internal/weekplan"
)

// rescanInterval is how often the runner recomputes every trigger.
// Mask gating is day-granular, so anything well under a day works.
const rescanInterval = 15 * time.Minute

type RemindCmd struct {
	flags *Flags
	app   *weekplan.App
}

// NewRemindCmd creates a new remind command
func NewRemindCmd(flags *Flags, app *weekplan.App) *RemindCmd {
	return &RemindCmd{flags: flags, app: app}
}

// Register adds the remind command to the application
func (cmd *RemindCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "remind",
		Usage: "Inspect and run reminders",
		Commands: []*cli.Command{
			{
				Name:      "next",
				Usage:     "Show when each reminder will fire next",
				UsageText: "weekplan remind next [task-id]",
				Action:    cmd.runNext,
			},
			{
				Name:      "run",
				Usage:     "Run the reminder scheduler until interrupted",
				UsageText: "weekplan remind run",
				Description: `Arms a timer for every task with an armed reminder and blocks,
printing a notification each time one fires. Recurring reminders re-arm
for their next occurrence after firing.`,
				Action: cmd.runScheduler,
			},
		},
	})

	return app
}

func (cmd *RemindCmd) runNext(ctx context.Context, c *cli.Command) error {
	tasks, err := cmd.app.Planner.All(ctx)
	if err != nil {
		return err
	}

	if c.Args().Len() > 0 {
		id, err := taskIDArg(c)
		if err != nil {
			return err
		}
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.ID == id {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
		if len(tasks) == 0 {
			return fmt.Errorf("task %d not found", id)
		}
	}

	now := time.Now()
	w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK\tNEXT\tIN")
	count := 0
	for _, t := range tasks {
		next, ok := reminder.NextTrigger(t, now)
		if !ok {
			continue
		}
		count++
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			t.ID,
			t.Description,
			next.Format("Mon 2006-01-02 15:04"),
			next.Sub(now).Round(time.Minute),
		)
	}
	if count == 0 {
		fmt.Fprintln(os.Stderr, "No armed reminders")
		return nil
	}
	return w.Flush()
}

func (cmd *RemindCmd) runScheduler(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := dispatch.NewScheduler(log.Logger, func(taskID int64, at time.Time) {
		t, err := cmd.app.Planner.Get(context.Background(), taskID)
		if err != nil {
			log.Error().Err(err).Int64("task_id", taskID).Msg("fired reminder for unknown task")
			return
		}

		fmt.Fprintf(c.Root().Writer, "[%s] reminder: %s\n", at.Format("15:04"), t.Description)

		// Recurring tasks get their next occurrence armed right away.
		if next, ok := reminder.NextTrigger(t, time.Now()); ok && t.Recurring {
			cmd.app.Planner.Dispatcher().Schedule(taskID, next)
		}
	})

	// Reminder mutations made while running go through this scheduler.
	cmd.app.Planner.SetDispatcher(sched)
	cmd.app.Dispatcher = sched

	if err := cmd.app.Planner.RescheduleAll(ctx); err != nil {
		return err
	}

	// Masked daily reminders only arm on their mask day, so the runner
	// re-scans periodically to pick up tasks whose day has arrived.
	go cmd.app.Planner.RescheduleLoop(ctx, rescanInterval)

	log.Info().Msg("reminder scheduler running, ctrl+c to stop")
	sched.Run(ctx)
	return nil
}
