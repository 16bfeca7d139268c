package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/core/agenda"
	"github.com/hay-kot/weekplan/internal/weekplan"
)

type MoveCmd struct {
	flags *Flags
	app   *weekplan.App

	// Command-specific flags
	day    string
	to     int
	search string
}

// NewMoveCmd creates a new move command
func NewMoveCmd(flags *Flags, app *weekplan.App) *MoveCmd {
	return &MoveCmd{flags: flags, app: app}
}

// Register adds the move command to the application
func (cmd *MoveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "move",
		Usage:     "Move a task to a day or to a position within its bucket",
		UsageText: "weekplan move (--day <label> | --to <pos>) <task-id>",
		Description: `--day re-files the task under a day label (monday..sunday,
immediate, soon, none), clearing any due date and pin. --to reorders the
task within its current bucket, pinning it at the given zero-based
position.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "day",
				Usage:       "target day label",
				Destination: &cmd.day,
			},
			&cli.IntFlag{
				Name:        "to",
				Usage:       "target position within the task's bucket",
				Value:       -1,
				Destination: &cmd.to,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "position within the filtered view 'ls --search' shows",
				Destination: &cmd.search,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *MoveCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	switch {
	case cmd.day != "":
		return cmd.moveToDay(ctx, c, id)
	case c.IsSet("to"):
		return cmd.moveToPosition(ctx, c, id)
	default:
		return fmt.Errorf("one of --day or --to is required")
	}
}

func (cmd *MoveCmd) moveToDay(ctx context.Context, c *cli.Command, id int64) error {
	label, err := parseDay(cmd.day)
	if err != nil {
		return err
	}

	if err := cmd.app.Planner.MoveToBucket(ctx, id, label); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Moved task %d to %s\n", id, label)
	return nil
}

func (cmd *MoveCmd) moveToPosition(ctx context.Context, c *cli.Command, id int64) error {
	if cmd.to < 0 {
		return fmt.Errorf("--to must be >= 0, got %d", cmd.to)
	}

	key, err := cmd.findBucket(ctx, id, cmd.search)
	if err != nil {
		return err
	}

	drag, err := cmd.app.Planner.BeginDrag(ctx, key, cmd.search)
	if err != nil {
		return err
	}

	from := drag.IndexOf(id)
	if from < 0 {
		return fmt.Errorf("task %d not found in its bucket", id)
	}
	if err := drag.Move(from, cmd.to); err != nil {
		return err
	}
	if err := cmd.app.Planner.CommitDrag(ctx, drag); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Pinned task %d at position %d\n", id, cmd.to)
	return nil
}

// findBucket locates the bucket a task is currently displayed in. For
// a daily-recurring task the today instance wins.
func (cmd *MoveCmd) findBucket(ctx context.Context, id int64, query string) (agenda.Key, error) {
	result, err := cmd.app.Planner.Agenda(ctx, query, false)
	if err != nil {
		return agenda.Key{}, err
	}

	for _, bucket := range result.Buckets {
		for _, item := range bucket.Items {
			if item.Task.ID == id {
				return bucket.Key(), nil
			}
		}
	}

	return agenda.Key{}, fmt.Errorf("task %d not found in any bucket", id)
}
