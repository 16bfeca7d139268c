package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/weekplan"
)

type DoneCmd struct {
	flags *Flags
	app   *weekplan.App
}

// NewDoneCmd creates a new done command
func NewDoneCmd(flags *Flags, app *weekplan.App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done command to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "done",
		Usage:     "Toggle a task's completion",
		UsageText: "weekplan done <task-id>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *DoneCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	t, err := cmd.app.Planner.ToggleComplete(ctx, id)
	if err != nil {
		return err
	}

	if t.Completed {
		fmt.Fprintf(c.Root().Writer, "Completed %q\n", t.Description)
	} else {
		fmt.Fprintf(c.Root().Writer, "Reopened %q\n", t.Description)
	}
	return nil
}
