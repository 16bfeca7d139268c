package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/weekplan"
)

type PinCmd struct {
	flags *Flags
	app   *weekplan.App

	// Command-specific flags
	clear bool
}

// NewPinCmd creates a new pin command
func NewPinCmd(flags *Flags, app *weekplan.App) *PinCmd {
	return &PinCmd{flags: flags, app: app}
}

// Register adds the pin command to the application
func (cmd *PinCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pin",
		Usage:     "Inspect or clear a task's manual position",
		UsageText: "weekplan pin [--clear] <task-id>",
		Description: `Pinned tasks hold a fixed slot in their bucket instead of the
time-and-priority ordering. Pins are created by reordering in the TUI or
with 'move --to'; this command reports or clears them.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "release the pin so the task sorts automatically again",
				Destination: &cmd.clear,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PinCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	if cmd.clear {
		if err := cmd.app.Planner.Unpin(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.Root().Writer, "Unpinned task %d\n", id)
		return nil
	}

	t, err := cmd.app.Planner.Get(ctx, id)
	if err != nil {
		return err
	}

	if t.ManualPosition == nil {
		fmt.Fprintf(c.Root().Writer, "Task %d is not pinned\n", id)
		return nil
	}

	fmt.Fprintf(c.Root().Writer, "Task %d is pinned at position %d\n", id, *t.ManualPosition)
	return nil
}
