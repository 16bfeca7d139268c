package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/weekplan/internal/core/calendar"
	"github.com/hay-kot/weekplan/internal/core/config"
	"github.com/hay-kot/weekplan/internal/core/reminder"
	"github.com/hay-kot/weekplan/internal/core/task"
	"github.com/hay-kot/weekplan/internal/data/db"
	"github.com/hay-kot/weekplan/internal/data/stores"
	"github.com/hay-kot/weekplan/internal/weekplan"
)

func newTestModel(t *testing.T) (Model, *weekplan.App) {
	t.Helper()
	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	planner := weekplan.NewPlannerService(stores.NewTaskStore(database), reminder.NopDispatcher{}, zerolog.Nop())
	app := weekplan.NewApp(planner, reminder.NopDispatcher{}, cfg, database)
	return New(app), app
}

func seedTasks(t *testing.T, app *weekplan.App) {
	t.Helper()
	ctx := context.Background()

	soon := calendar.Soon
	first := task.Task{Description: "write report", Day: &soon}
	require.NoError(t, app.Planner.Create(ctx, &first))

	second := task.Task{Description: "buy milk", Day: &soon}
	require.NoError(t, app.Planner.Create(ctx, &second))
}

// load runs Init synchronously and feeds the result back in.
func load(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.Init()()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestModelRendersBuckets(t *testing.T) {
	m, app := newTestModel(t)
	seedTasks(t, app)
	m = load(t, m)

	view := m.View()
	assert.Contains(t, view, "soon")
	assert.Contains(t, view, "write report")
	assert.Contains(t, view, "buy milk")
}

func TestModelEmptyState(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m)
	assert.Contains(t, m.View(), "nothing planned")
}

func TestModelCursorSkipsHeaders(t *testing.T) {
	m, app := newTestModel(t)
	seedTasks(t, app)
	m = load(t, m)

	sel, ok := m.selected()
	require.True(t, ok, "cursor must rest on an item after load")
	assert.False(t, sel.header)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	next, ok := m.selected()
	require.True(t, ok)
	assert.NotEqual(t, sel.item.Task.ID, next.item.Task.ID)

	// Bottom of the list: another down stays put.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	last, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, next.item.Task.ID, last.item.Task.ID)
}

func TestModelToggleDone(t *testing.T) {
	m, _ := newTestModel(t)
	seedTasks(t, m.app)
	m = load(t, m)

	sel, ok := m.selected()
	require.True(t, ok)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	got, err := m.app.Planner.Agenda(context.Background(), "", false)
	require.NoError(t, err)

	var completed int
	for _, b := range got.Buckets {
		for _, it := range b.Items {
			if it.Completed() {
				completed++
				assert.Equal(t, sel.item.Task.ID, it.Task.ID)
			}
		}
	}
	assert.Equal(t, 1, completed)
}

func TestModelSearch(t *testing.T) {
	m, app := newTestModel(t)
	seedTasks(t, app)
	m = load(t, m)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	require.True(t, m.searching)

	for _, r := range "milk" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.False(t, m.searching)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "buy milk")
	assert.False(t, strings.Contains(view, "write report"))
}

func TestModelCollapseBucket(t *testing.T) {
	m, app := newTestModel(t)
	seedTasks(t, app)
	m = load(t, m)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "soon")
	assert.Contains(t, view, "hidden")
	assert.False(t, strings.Contains(view, "write report"))

	// The cursor lands on the collapsed header so tab can reopen it.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Contains(t, m.View(), "write report")
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
