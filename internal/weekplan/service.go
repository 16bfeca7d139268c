package weekplan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/weekplan/internal/core/agenda"
	"github.com/hay-kot/weekplan/internal/core/calendar"
	"github.com/hay-kot/weekplan/internal/core/reminder"
	"github.com/hay-kot/weekplan/internal/core/task"
)

// PlannerService wraps task.Store with the mutation logic of the
// planner: validation, completion bookkeeping, reminder scheduling,
// and the drag transaction. Mutations are serialized by an internal
// mutex; reads go straight to the store.
type PlannerService struct {
	store      task.Store
	dispatcher reminder.Dispatcher
	log        zerolog.Logger

	// mu enforces the single-writer discipline over mutations.
	mu sync.Mutex

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(store task.Store, dispatcher reminder.Dispatcher, log zerolog.Logger) *PlannerService {
	return &PlannerService{
		store:      store,
		dispatcher: dispatcher,
		log:        log.With().Str("component", "planner").Logger(),
		now:        time.Now,
	}
}

// Create validates and persists a new task and arms its reminder.
func (s *PlannerService) Create(ctx context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := task.Validate(*t); err != nil {
		return err
	}
	if err := s.store.Create(ctx, t); err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	s.syncReminder(*t)
	return nil
}

// Get returns a single task by ID.
func (s *PlannerService) Get(ctx context.Context, id int64) (task.Task, error) {
	return s.store.Get(ctx, id)
}

// All returns every stored task.
func (s *PlannerService) All(ctx context.Context) ([]task.Task, error) {
	return s.store.GetAll(ctx)
}

// Dispatcher returns the reminder dispatcher currently in use.
func (s *PlannerService) Dispatcher() reminder.Dispatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatcher
}

// SetDispatcher swaps the reminder dispatcher. Used when a long-lived
// scheduler replaces the no-op dispatcher commands start with.
func (s *PlannerService) SetDispatcher(d reminder.Dispatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatcher = d
}

// Update validates and persists changes to an existing task, then
// re-arms or cancels its reminder to match.
func (s *PlannerService) Update(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := task.Validate(t); err != nil {
		return err
	}
	if err := s.store.Update(ctx, t); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	s.syncReminder(t)
	return nil
}

// Delete removes a task and cancels any pending reminder.
func (s *PlannerService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.dispatcher.Cancel(id)
	return nil
}

// ToggleComplete flips a task's completion. Completing stamps
// CompletedAt and cancels the reminder; un-completing clears the stamp
// and re-arms it.
func (s *PlannerService) ToggleComplete(ctx context.Context, id int64) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Get(ctx, id)
	if err != nil {
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}

	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
	} else {
		now := s.now()
		t.Completed = true
		t.CompletedAt = &now
	}

	if err := s.store.Update(ctx, t); err != nil {
		return task.Task{}, fmt.Errorf("update task: %w", err)
	}

	s.syncReminder(t)
	return t, nil
}

// Unpin clears a task's manual position, restoring automatic ordering
// within its bucket.
func (s *PlannerService) Unpin(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	t.ManualPosition = nil
	if err := s.store.Update(ctx, t); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// MoveToBucket reassigns a task to a day label. The due date and any
// manual position are cleared so the label alone drives placement.
func (s *PlannerService) MoveToBucket(ctx context.Context, id int64, label calendar.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	t.Day = &label
	t.UnknownDay = ""
	t.DueDate = nil
	t.ManualPosition = nil

	if err := s.store.Update(ctx, t); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	s.syncReminder(t)
	return nil
}

// Snooze re-arms a fired reminder a fixed delay out.
func (s *PlannerService) Snooze(id int64) {
	s.dispatcher.ScheduleSnooze(id)
}

// Agenda returns the categorized week view from the current store
// snapshot. Data-integrity warnings are logged, not returned as
// errors; the caller always gets a usable view.
func (s *PlannerService) Agenda(ctx context.Context, query string, includeCompleted bool) (agenda.Result, error) {
	tasks, err := s.store.GetAll(ctx)
	if err != nil {
		return agenda.Result{}, fmt.Errorf("load tasks: %w", err)
	}

	result := agenda.Categorize(tasks, agenda.Options{
		Query:            query,
		IncludeCompleted: includeCompleted,
		Now:              s.now(),
	})

	for _, w := range result.Warnings {
		s.log.Warn().
			Int64("task_id", w.TaskID).
			Str("label", w.Label).
			Msg(w.Reason)
	}
	return result, nil
}

// RescheduleAll recomputes the trigger for every task and arms or
// cancels accordingly. Called at startup and by the reminder runner.
func (s *PlannerService) RescheduleAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	for _, t := range tasks {
		s.syncReminder(t)
	}
	return nil
}

// RescheduleLoop re-runs RescheduleAll on a fixed interval until ctx
// is done. Daily reminder masks are evaluated against the current
// weekday, so a long-running process has to re-scan for tasks whose
// mask day arrives after startup.
func (s *PlannerService) RescheduleLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RescheduleAll(ctx); err != nil {
				s.log.Error().Err(err).Msg("reschedule scan failed")
			}
		}
	}
}

// syncReminder arms or cancels the task's reminder to match its
// current state. Callers hold s.mu.
func (s *PlannerService) syncReminder(t task.Task) {
	if t.Completed {
		s.dispatcher.Cancel(t.ID)
		return
	}

	at, ok := reminder.NextTrigger(t, s.now())
	if !ok {
		s.dispatcher.Cancel(t.ID)
		return
	}
	s.dispatcher.Schedule(t.ID, at)
}
