package task

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a task does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrInvalid is returned when a task fails validation at the
	// mutation boundary. Invalid tasks never reach categorization.
	ErrInvalid = errors.New("invalid task")
)

// Store defines task persistence. The engine treats whatever snapshot
// GetAll returns as the truth and always recomputes from it. Single
// mutations need no transactional guarantees; only the pin batch is
// all-or-nothing.
type Store interface {
	// GetAll returns every task.
	GetAll(ctx context.Context) ([]Task, error)

	// Get returns a task by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id int64) (Task, error)

	// Create persists a new task and populates its ID and timestamps.
	Create(ctx context.Context, t *Task) error

	// Update replaces the stored task. Returns ErrNotFound if absent.
	Update(ctx context.Context, t Task) error

	// Delete removes a task. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// SetManualPositions pins each task at its position in one atomic
	// write: either every position lands or none do. Returns
	// ErrNotFound if any ID is absent.
	SetManualPositions(ctx context.Context, positions map[int64]int) error
}
