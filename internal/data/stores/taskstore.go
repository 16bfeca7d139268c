package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hay-kot/weekplan/internal/core/calendar"
	"github.com/hay-kot/weekplan/internal/core/task"
	"github.com/hay-kot/weekplan/internal/data/db"
)

// TaskStore implements task.Store using SQLite.
type TaskStore struct {
	db *db.DB
}

var _ task.Store = (*TaskStore)(nil)

// NewTaskStore creates a new SQLite-backed task store.
func NewTaskStore(db *db.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskColumns = `id, description, due_date, due_time_ms, day_label, recurring, recurrence,
	reminder_lead, reminder_days, completed, completed_at, manual_position, priority,
	created_at, updated_at`

// GetAll returns every task, oldest first.
func (s *TaskStore) GetAll(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Get returns a task by ID. Returns task.ErrNotFound if absent.
func (s *TaskStore) Get(ctx context.Context, id int64) (task.Task, error) {
	row := s.db.Conn().QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if IsNotFoundError(err) {
		return task.Task{}, task.ErrNotFound
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Create persists a new task, populating ID and timestamps.
func (s *TaskStore) Create(ctx context.Context, t *task.Task) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	res, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO tasks (
			description, due_date, due_time_ms, day_label, recurring, recurrence,
			reminder_lead, reminder_days, completed, completed_at, manual_position, priority,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Description,
		toNullDate(t.DueDate),
		toNullInt(t.DueTime),
		dayLabelValue(*t),
		t.Recurring,
		toNullString(string(t.Recurrence)),
		toNullInt(t.ReminderLead),
		t.ReminderDays.String(),
		t.Completed,
		toNullNanos(t.CompletedAt),
		toNullInt(t.ManualPosition),
		t.Priority,
		t.CreatedAt.UnixNano(),
		t.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create task id: %w", err)
	}
	t.ID = id
	return nil
}

// Update replaces the stored task. Returns task.ErrNotFound if absent.
func (s *TaskStore) Update(ctx context.Context, t task.Task) error {
	t.UpdatedAt = time.Now()

	res, err := s.db.Conn().ExecContext(ctx, `
		UPDATE tasks SET
			description = ?, due_date = ?, due_time_ms = ?, day_label = ?,
			recurring = ?, recurrence = ?, reminder_lead = ?, reminder_days = ?,
			completed = ?, completed_at = ?, manual_position = ?, priority = ?,
			updated_at = ?
		WHERE id = ?`,
		t.Description,
		toNullDate(t.DueDate),
		toNullInt(t.DueTime),
		dayLabelValue(t),
		t.Recurring,
		toNullString(string(t.Recurrence)),
		toNullInt(t.ReminderLead),
		t.ReminderDays.String(),
		t.Completed,
		toNullNanos(t.CompletedAt),
		toNullInt(t.ManualPosition),
		t.Priority,
		t.UpdatedAt.UnixNano(),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows: %w", err)
	}
	if n == 0 {
		return task.ErrNotFound
	}
	return nil
}

// SetManualPositions pins each task at its position inside one
// transaction, so an interrupted drag commit never leaves a partial
// set of pins behind.
func (s *TaskStore) SetManualPositions(ctx context.Context, positions map[int64]int) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UnixNano()
		for id, pos := range positions {
			res, err := tx.ExecContext(ctx,
				`UPDATE tasks SET manual_position = ?, updated_at = ? WHERE id = ?`,
				pos, now, id,
			)
			if err != nil {
				return fmt.Errorf("pin task %d: %w", id, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("pin task %d rows: %w", id, err)
			}
			if n == 0 {
				return fmt.Errorf("pin task %d: %w", id, task.ErrNotFound)
			}
		}
		return nil
	})
}

// Delete removes a task. Returns task.ErrNotFound if absent.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.Conn().ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows: %w", err)
	}
	if n == 0 {
		return task.ErrNotFound
	}
	return nil
}

// dayLabelValue picks what to persist for the day column. An unknown
// label read from an old database is written back verbatim so a round
// trip never destroys data the engine only warned about.
func dayLabelValue(t task.Task) sql.NullString {
	if t.Day != nil {
		return sql.NullString{String: t.Day.String(), Valid: true}
	}
	return toNullString(t.UnknownDay)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (task.Task, error) {
	var (
		t            task.Task
		dueDate      sql.NullString
		dueTime      sql.NullInt64
		dayLabel     sql.NullString
		recurrence   sql.NullString
		reminderLead sql.NullInt64
		reminderDays string
		completedAt  sql.NullInt64
		manualPos    sql.NullInt64
		createdAt    int64
		updatedAt    int64
	)

	err := row.Scan(
		&t.ID, &t.Description, &dueDate, &dueTime, &dayLabel, &t.Recurring, &recurrence,
		&reminderLead, &reminderDays, &t.Completed, &completedAt, &manualPos, &t.Priority,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return task.Task{}, err
	}

	t.DueDate, err = fromNullDate(dueDate)
	if err != nil {
		return task.Task{}, fmt.Errorf("parse due date: %w", err)
	}
	t.DueTime = fromNullInt(dueTime)
	t.Recurrence = task.Recurrence(recurrence.String)
	t.ReminderLead = fromNullInt(reminderLead)
	t.CompletedAt = fromNullNanos(completedAt)
	t.ManualPosition = fromNullInt(manualPos)
	t.CreatedAt = time.Unix(0, createdAt)
	t.UpdatedAt = time.Unix(0, updatedAt)

	if dayLabel.Valid && dayLabel.String != "" {
		label, err := calendar.ParseLabel(dayLabel.String)
		if err != nil {
			// The engine routes unknown labels to waiting and warns;
			// the store only preserves the raw value.
			t.UnknownDay = dayLabel.String
		} else {
			t.Day = &label
		}
	}

	days, err := task.ParseDaySet(reminderDays)
	if err != nil {
		return task.Task{}, fmt.Errorf("parse reminder days: %w", err)
	}
	t.ReminderDays = days

	return t, nil
}
