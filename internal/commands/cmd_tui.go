package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/tui"
	"github.com/hay-kot/weekplan/internal/weekplan"
)

type TuiCmd struct {
	flags *Flags
	app   *weekplan.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *weekplan.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive weekly agenda",
		UsageText: "weekplan tui",
		Action:    cmd.run,
	})

	return app
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	return Run(ctx, cmd.app)
}

// Run starts the interactive agenda. It is also the root command's
// default action.
func Run(ctx context.Context, app *weekplan.App) error {
	program := tea.NewProgram(tui.New(app), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
