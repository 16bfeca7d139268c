package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/weekplan/internal/core/config"
	"github.com/hay-kot/weekplan/internal/core/reminder"
	"github.com/hay-kot/weekplan/internal/data/db"
	"github.com/hay-kot/weekplan/internal/data/stores"
	"github.com/hay-kot/weekplan/internal/weekplan"
)

// testApp wires the command tree over a temp database, skipping the
// Before hook. Each Run builds fresh command structs so flag state
// never leaks between invocations.
type testApp struct {
	planApp *weekplan.App
	flags   *Flags
	buf     bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	planner := weekplan.NewPlannerService(stores.NewTaskStore(database), reminder.NopDispatcher{}, zerolog.Nop())
	return &testApp{
		planApp: weekplan.NewApp(planner, reminder.NopDispatcher{}, cfg, database),
		flags:   &Flags{Config: cfg},
	}
}

func (a *testApp) Run(args ...string) error {
	app := &cli.Command{
		Name:   "weekplan",
		Writer: &a.buf,
	}
	app = NewNewCmd(a.flags, a.planApp).Register(app)
	app = NewLsCmd(a.flags, a.planApp).Register(app)
	app = NewEditCmd(a.flags, a.planApp).Register(app)
	app = NewDoneCmd(a.flags, a.planApp).Register(app)
	app = NewMoveCmd(a.flags, a.planApp).Register(app)
	app = NewPinCmd(a.flags, a.planApp).Register(app)
	app = NewRmCmd(a.flags, a.planApp).Register(app)

	return app.Run(context.Background(), append([]string{"weekplan"}, args...))
}

func run(t *testing.T, app *testApp, args ...string) {
	t.Helper()
	require.NoError(t, app.Run(args...))
}

func TestNewThenLsJSON(t *testing.T) {
	app := newTestApp(t)
	buf := &app.buf

	run(t, app, "new", "--desc", "water plants", "--day", "soon")
	run(t, app, "new", "--desc", "standup", "--day", "monday", "--time", "09:00")
	buf.Reset()

	run(t, app, "ls", "--json")

	var buckets []jsonBucket
	require.NoError(t, json.Unmarshal(buf.Bytes(), &buckets))
	require.NotEmpty(t, buckets)

	var descriptions []string
	for _, b := range buckets {
		for _, it := range b.Items {
			descriptions = append(descriptions, it.Description)
		}
	}
	assert.Contains(t, descriptions, "water plants")
	assert.Contains(t, descriptions, "standup")
}

func TestDoneRoundTrip(t *testing.T) {
	app := newTestApp(t)
	buf := &app.buf

	run(t, app, "new", "--desc", "water plants", "--day", "soon")
	buf.Reset()

	run(t, app, "done", "1")
	assert.Contains(t, buf.String(), `Completed "water plants"`)
	buf.Reset()

	run(t, app, "done", "1")
	assert.Contains(t, buf.String(), `Reopened "water plants"`)
}

func TestEditChangesFields(t *testing.T) {
	app := newTestApp(t)
	buf := &app.buf

	run(t, app, "new", "--desc", "water plants", "--day", "soon")
	run(t, app, "edit", "--desc", "water the ferns", "1")
	buf.Reset()

	run(t, app, "ls", "--json")

	var buckets []jsonBucket
	require.NoError(t, json.Unmarshal(buf.Bytes(), &buckets))
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Items, 1)
	assert.Equal(t, "water the ferns", buckets[0].Items[0].Description)
}

func TestMoveToDayAndPin(t *testing.T) {
	app := newTestApp(t)
	buf := &app.buf

	run(t, app, "new", "--desc", "water plants", "--day", "soon")
	run(t, app, "new", "--desc", "buy soil", "--day", "soon")

	// Reorder within the soon bucket pins the moved task.
	run(t, app, "move", "--to", "0", "2")
	buf.Reset()
	run(t, app, "pin", "2")
	assert.Contains(t, buf.String(), "pinned at position 0")
	buf.Reset()

	run(t, app, "pin", "--clear", "2")
	run(t, app, "pin", "2")
	assert.Contains(t, buf.String(), "not pinned")
	buf.Reset()

	// Moving to a day clears everything positional.
	run(t, app, "move", "--day", "monday", "1")
	assert.Contains(t, buf.String(), "Moved task 1 to monday")
}

func TestRmMissingTask(t *testing.T) {
	app := newTestApp(t)
	err := app.Run("rm", "99")
	assert.Error(t, err)
}
