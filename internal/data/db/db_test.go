package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	database, err := Open(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	var name string
	err = database.Conn().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='tasks'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "tasks", name)
}

func TestOpenBackfillsColumns(t *testing.T) {
	dir := t.TempDir()

	// Seed a database shaped like the first release, before the
	// manual ordering and priority columns existed.
	legacy, err := sql.Open("sqlite", "file:"+filepath.Join(dir, "weekplan.db"))
	require.NoError(t, err)
	_, err = legacy.Exec(`
		CREATE TABLE tasks (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			description   TEXT NOT NULL,
			due_date      TEXT,
			due_time_ms   INTEGER,
			day_label     TEXT,
			recurring     INTEGER NOT NULL DEFAULT 0,
			recurrence    TEXT,
			reminder_lead INTEGER,
			completed     INTEGER NOT NULL DEFAULT 0,
			completed_at  INTEGER,
			created_at    INTEGER NOT NULL,
			updated_at    INTEGER NOT NULL
		);
		INSERT INTO tasks (description, created_at, updated_at) VALUES ('legacy row', 1, 1);
	`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	database, err := Open(dir)
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	cols, err := database.tableColumns(context.Background(), "tasks")
	require.NoError(t, err)
	for _, col := range addedColumns {
		assert.True(t, cols[col.name], "column %s missing after backfill", col.name)
	}

	// The pre-existing row reads back with the defaults.
	var days string
	var priority int
	err = database.Conn().QueryRow(
		"SELECT reminder_days, priority FROM tasks WHERE description = 'legacy row'",
	).Scan(&days, &priority)
	require.NoError(t, err)
	assert.Empty(t, days)
	assert.Zero(t, priority)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	database, err := Open(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	ctx := context.Background()
	wantErr := assert.AnError

	err = database.WithTx(ctx, func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx,
			"INSERT INTO tasks (description, created_at, updated_at) VALUES ('ghost', 1, 1)")
		require.NoError(t, execErr)
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	var count int
	require.NoError(t, database.Conn().QueryRow("SELECT COUNT(*) FROM tasks").Scan(&count))
	assert.Zero(t, count)
}
