package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/commands"
	"github.com/hay-kot/weekplan/internal/core/config"
	"github.com/hay-kot/weekplan/internal/core/reminder"
	"github.com/hay-kot/weekplan/internal/data/db"
	"github.com/hay-kot/weekplan/internal/data/stores"
	"github.com/hay-kot/weekplan/internal/weekplan"
	"github.com/hay-kot/weekplan/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		planApp   = &weekplan.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "weekplan",
		Usage:     "Plan your week from the terminal",
		UsageText: "weekplan [global options] command [command options]",
		Description: `Weekplan keeps a rolling seven-day agenda of your tasks. Tasks land
in a day bucket by due date or day label, in "soon" when they can wait,
and in "waiting" when they have no slot yet.

Run 'weekplan' with no arguments to open the interactive agenda.
Run 'weekplan new' to add a task, 'weekplan remind run' to serve reminders.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("WEEKPLAN_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/weekplan.log)",
				Sources:     cli.EnvVars("WEEKPLAN_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("WEEKPLAN_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("WEEKPLAN_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}

			// Always log to a file; use explicit path or default to
			// <data-dir>/weekplan.log so TUI output stays clean.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "weekplan.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			database, err = db.Open(cfg.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// Short-lived commands get the no-op dispatcher; 'remind
			// run' swaps in the real scheduler for its lifetime.
			var (
				taskStore  = stores.NewTaskStore(database)
				dispatcher = reminder.NopDispatcher{}
				planner    = weekplan.NewPlannerService(taskStore, dispatcher, log.Logger)
			)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*planApp = *weekplan.NewApp(planner, dispatcher, cfg, database)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewNewCmd(flags, planApp).Register(app)
	app = commands.NewLsCmd(flags, planApp).Register(app)
	app = commands.NewEditCmd(flags, planApp).Register(app)
	app = commands.NewDoneCmd(flags, planApp).Register(app)
	app = commands.NewMoveCmd(flags, planApp).Register(app)
	app = commands.NewPinCmd(flags, planApp).Register(app)
	app = commands.NewRmCmd(flags, planApp).Register(app)
	app = commands.NewRemindCmd(flags, planApp).Register(app)
	app = commands.NewTuiCmd(flags, planApp).Register(app)

	// Open the TUI when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'weekplan --help' for usage", c.Args().First())
		}
		return commands.Run(ctx, planApp)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
