package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/weekplan/internal/core/reminder"
)

type fireRecorder struct {
	mu    sync.Mutex
	fired []int64
	ch    chan int64
}

func newFireRecorder() *fireRecorder {
	return &fireRecorder{ch: make(chan int64, 16)}
}

func (r *fireRecorder) fire(taskID int64, _ time.Time) {
	r.mu.Lock()
	r.fired = append(r.fired, taskID)
	r.mu.Unlock()
	r.ch <- taskID
}

func (r *fireRecorder) waitForFire(t *testing.T) int64 {
	t.Helper()
	select {
	case id := <-r.ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reminder to fire")
		return 0
	}
}

func TestSchedulerFires(t *testing.T) {
	rec := newFireRecorder()
	s := NewScheduler(zerolog.Nop(), rec.fire)

	s.Schedule(1, time.Now().Add(10*time.Millisecond))
	assert.Equal(t, int64(1), rec.waitForFire(t))

	state, ok := s.State(1)
	require.True(t, ok)
	assert.Equal(t, reminder.StateFired, state)
}

func TestSchedulerReplaceOnReschedule(t *testing.T) {
	rec := newFireRecorder()
	s := NewScheduler(zerolog.Nop(), rec.fire)

	// The first schedule is far out; the second replaces it with a
	// near one. Only one fire must result.
	s.Schedule(1, time.Now().Add(time.Hour))
	s.Schedule(1, time.Now().Add(10*time.Millisecond))

	assert.Equal(t, int64(1), rec.waitForFire(t))

	select {
	case <-rec.ch:
		t.Fatal("replaced timer fired anyway")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSchedulerCancel(t *testing.T) {
	rec := newFireRecorder()
	s := NewScheduler(zerolog.Nop(), rec.fire)

	s.Schedule(1, time.Now().Add(20*time.Millisecond))
	s.Cancel(1)

	select {
	case <-rec.ch:
		t.Fatal("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}

	_, ok := s.State(1)
	assert.False(t, ok, "cancelled entry must be removed")

	// Cancelling an unknown task is a no-op.
	s.Cancel(42)
}

func TestSchedulerSnooze(t *testing.T) {
	rec := newFireRecorder()
	s := NewScheduler(zerolog.Nop(), rec.fire)

	s.Schedule(1, time.Now().Add(5*time.Millisecond))
	rec.waitForFire(t)

	s.ScheduleSnooze(1)

	state, ok := s.State(1)
	require.True(t, ok)
	assert.Equal(t, reminder.StateScheduled, state, "snooze re-enters scheduled")
}

func TestSchedulerRunStopsTimers(t *testing.T) {
	rec := newFireRecorder()
	s := NewScheduler(zerolog.Nop(), rec.fire)

	s.Schedule(1, time.Now().Add(30*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	select {
	case <-rec.ch:
		t.Fatal("timer fired after shutdown")
	case <-time.After(100 * time.Millisecond):
	}
}
