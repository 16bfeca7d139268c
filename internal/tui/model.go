// Package tui is the interactive week view: categorized buckets with
// cursor movement, completion toggling, search, and drag reordering.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/weekplan/internal/core/agenda"
	"github.com/hay-kot/weekplan/internal/core/config"
	"github.com/hay-kot/weekplan/internal/core/styles"
	"github.com/hay-kot/weekplan/internal/weekplan"
)

// line is one rendered row: either a bucket header or an item at a
// position within its bucket.
type line struct {
	header bool
	bucket agenda.Key
	name   string
	item   agenda.Item
	index  int
}

// Model is the bubbletea model for the week view.
type Model struct {
	app    *weekplan.App
	styles styles.Set
	keys   map[string]string

	result agenda.Result
	lines  []line
	// cursor indexes into lines and always rests on an item row.
	cursor int
	// collapsed buckets render their header only. Pure view state,
	// reset on restart.
	collapsed map[agenda.Key]bool

	search    textinput.Model
	searching bool
	query     string

	width  int
	height int
	err    error
}

// New creates the week view model.
func New(app *weekplan.App) Model {
	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 120

	return Model{
		app:       app,
		styles:    styles.NewSet(styles.GetPalette(styles.DefaultTheme)),
		keys:      app.Config.Keybindings,
		search:    search,
		collapsed: make(map[agenda.Key]bool),
	}
}

type agendaMsg struct {
	result agenda.Result
}

type errMsg struct {
	err error
}

// Init loads the initial agenda.
func (m Model) Init() tea.Cmd {
	return m.loadAgenda()
}

func (m Model) loadAgenda() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		result, err := m.app.Planner.Agenda(context.Background(), query, false)
		if err != nil {
			return errMsg{err: err}
		}
		return agendaMsg{result: result}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case agendaMsg:
		m.result = msg.result
		m.rebuildLines()
		return m, nil

	case errMsg:
		m.err = msg.err
		log.Error().Err(msg.err).Msg("tui agenda load failed")
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.query = m.search.Value()
		return m, m.loadAgenda()
	case "esc":
		m.searching = false
		m.search.SetValue("")
		m.query = ""
		return m, m.loadAgenda()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Cursor movement is fixed; everything else is configurable.
	switch key {
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.cursor >= 0 && m.cursor < len(m.lines) {
			key := m.lines[m.cursor].bucket
			m.collapsed[key] = !m.collapsed[key]
			m.rebuildLines()
		}
		return m, nil
	}

	switch m.keys[key] {
	case config.ActionQuit:
		return m, tea.Quit

	case config.ActionSearch:
		m.searching = true
		m.search.SetValue(m.query)
		return m, m.search.Focus()

	case config.ActionToggleDone:
		if it, ok := m.selected(); ok {
			return m, m.toggleDone(it.item.Task.ID)
		}

	case config.ActionUnpin:
		if it, ok := m.selected(); ok {
			return m, m.unpin(it.item.Task.ID)
		}

	case config.ActionMoveUp:
		return m, m.dragSelected(-1)

	case config.ActionMoveDown:
		return m, m.dragSelected(1)
	}

	return m, nil
}

func (m Model) toggleDone(id int64) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.app.Planner.ToggleComplete(context.Background(), id); err != nil {
			return errMsg{err: err}
		}
		return m.loadAgenda()()
	}
}

func (m Model) unpin(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Planner.Unpin(context.Background(), id); err != nil {
			return errMsg{err: err}
		}
		return m.loadAgenda()()
	}
}

// dragSelected moves the selected item one slot within its bucket and
// commits immediately. Each keypress is its own transaction.
func (m Model) dragSelected(delta int) tea.Cmd {
	sel, ok := m.selected()
	if !ok {
		return nil
	}

	from := sel.index
	to := from + delta
	bucket := sel.bucket
	query := m.query

	return func() tea.Msg {
		ctx := context.Background()
		drag, err := m.app.Planner.BeginDrag(ctx, bucket, query)
		if err != nil {
			return errMsg{err: err}
		}
		if to < 0 || to >= len(drag.Items()) {
			return m.loadAgenda()()
		}
		if err := drag.Move(from, to); err != nil {
			return errMsg{err: err}
		}
		if err := m.app.Planner.CommitDrag(ctx, drag); err != nil {
			return errMsg{err: err}
		}
		return m.loadAgenda()()
	}
}

// selected returns the item line under the cursor.
func (m Model) selected() (line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return line{}, false
	}
	l := m.lines[m.cursor]
	if l.header {
		return line{}, false
	}
	return l, true
}

// moveCursor advances to the next selectable row: an item, or the
// header of a collapsed bucket (so it can be expanded again).
func (m *Model) moveCursor(delta int) {
	next := m.cursor
	for {
		next += delta
		if next < 0 || next >= len(m.lines) {
			return
		}
		if m.selectable(m.lines[next]) {
			m.cursor = next
			return
		}
	}
}

func (m *Model) selectable(l line) bool {
	if !l.header {
		return true
	}
	return m.collapsed[l.bucket]
}

// rebuildLines flattens the bucket list into rows and keeps the cursor
// on an item.
func (m *Model) rebuildLines() {
	m.lines = m.lines[:0]
	for _, b := range m.result.Buckets {
		key := b.Key()
		m.lines = append(m.lines, line{header: true, bucket: key, name: b.Name()})
		if m.collapsed[key] {
			continue
		}
		for i, it := range b.Items {
			m.lines = append(m.lines, line{bucket: key, item: it, index: i})
		}
	}

	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	// Settle on the nearest selectable row.
	if m.cursor < len(m.lines) && !m.selectable(m.lines[m.cursor]) {
		m.moveCursor(1)
		if !m.selectable(m.lines[m.cursor]) {
			m.moveCursor(-1)
		}
	}
}
