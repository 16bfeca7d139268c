package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/core/agenda"
	"github.com/hay-kot/weekplan/internal/weekplan"
	"github.com/hay-kot/weekplan/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *weekplan.App

	// flags
	search     string
	completed  bool
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *weekplan.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "Show the categorized week",
		UsageText: "weekplan ls [--search q] [--completed] [--json]",
		Description: `Displays the rolling 7-day view: one bucket per day plus soon,
waiting, and completed. Use --json for scripting.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "filter tasks by description substring",
				Destination: &cmd.search,
			},
			&cli.BoolFlag{
				Name:        "completed",
				Usage:       "include completed tasks when searching",
				Destination: &cmd.completed,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output buckets as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// jsonItem is the scripting-facing shape of one agenda entry.
type jsonItem struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Virtual     bool   `json:"virtual,omitempty"`
	Pinned      bool   `json:"pinned,omitempty"`
	DueTime     string `json:"due_time,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Recurrence  string `json:"recurrence,omitempty"`
}

type jsonBucket struct {
	Name  string     `json:"name"`
	Items []jsonItem `json:"items"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	result, err := cmd.app.Planner.Agenda(ctx, cmd.search, cmd.completed)
	if err != nil {
		return fmt.Errorf("load agenda: %w", err)
	}

	if len(result.Buckets) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "Nothing planned\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		buckets := make([]jsonBucket, 0, len(result.Buckets))
		for _, b := range result.Buckets {
			jb := jsonBucket{Name: b.Name(), Items: make([]jsonItem, 0, len(b.Items))}
			for _, it := range b.Items {
				jb.Items = append(jb.Items, toJSONItem(it))
			}
			buckets = append(buckets, jb)
		}
		return iojson.WriteWith(out, os.Stderr, buckets)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, b := range result.Buckets {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s\n", strings.ToUpper(b.Name()))

		for _, it := range b.Items {
			check := " "
			if it.Completed() {
				check = "x"
			}

			var notes []string
			if it.Task.DueTime != nil {
				ms := *it.Task.DueTime
				notes = append(notes, fmt.Sprintf("%02d:%02d", ms/3600000, ms%3600000/60000))
			}
			if it.Task.DueDate != nil {
				notes = append(notes, it.Task.DueDate.Format(dateLayout))
			}
			if it.Task.ManualPosition != nil {
				notes = append(notes, "pinned")
			}
			if it.Task.Recurring {
				notes = append(notes, string(it.Task.Recurrence))
			}

			_, _ = fmt.Fprintf(w, "  [%s]\t%d\t%s\t%s\n", check, it.Task.ID, it.Task.Description, strings.Join(notes, " "))
		}
	}
	return w.Flush()
}

func toJSONItem(it agenda.Item) jsonItem {
	ji := jsonItem{
		ID:          it.Task.ID,
		Description: it.Task.Description,
		Completed:   it.Completed(),
		Virtual:     it.Virtual,
		Pinned:      it.Task.ManualPosition != nil,
	}
	if it.Task.DueTime != nil {
		ms := *it.Task.DueTime
		ji.DueTime = fmt.Sprintf("%02d:%02d", ms/3600000, ms%3600000/60000)
	}
	if it.Task.DueDate != nil {
		ji.DueDate = it.Task.DueDate.Format(dateLayout)
	}
	if it.Task.Recurring {
		ji.Recurrence = string(it.Task.Recurrence)
	}
	return ji
}
