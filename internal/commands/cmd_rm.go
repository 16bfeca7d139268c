package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/weekplan"
)

type RmCmd struct {
	flags *Flags
	app   *weekplan.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *weekplan.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		UsageText: "weekplan rm <task-id>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	if err := cmd.app.Planner.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Deleted task %d\n", id)
	return nil
}
