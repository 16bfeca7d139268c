package weekplan

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/weekplan/internal/core/agenda"
)

var (
	// ErrBucketNotFound is returned when a drag targets a bucket that
	// is not present in the current agenda.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrBadIndex is returned for out-of-range drag indices.
	ErrBadIndex = errors.New("index out of range")
)

// Drag is an in-memory reorder of one bucket, begun by BeginDrag and
// persisted by CommitDrag. Nothing is written until commit, and the
// transaction holds no shared state: dropping a Drag abandons it.
type Drag struct {
	key   agenda.Key
	items []agenda.Item

	// moved records which tasks the user actually repositioned; only
	// these and tasks that were already pinned get a manual position
	// written at commit.
	moved map[int64]bool
}

// BeginDrag snapshots the bucket's current order as a drag
// transaction.
func (s *PlannerService) BeginDrag(ctx context.Context, key agenda.Key, query string) (*Drag, error) {
	result, err := s.Agenda(ctx, query, false)
	if err != nil {
		return nil, err
	}

	bucket, ok := result.Bucket(key)
	if !ok {
		return nil, fmt.Errorf("%w: kind %d offset %d", ErrBucketNotFound, key.Kind, key.Offset)
	}

	items := make([]agenda.Item, len(bucket.Items))
	copy(items, bucket.Items)

	return &Drag{
		key:   key,
		items: items,
		moved: make(map[int64]bool),
	}, nil
}

// Items is the current in-memory order of the bucket.
func (d *Drag) Items() []agenda.Item {
	return d.items
}

// IndexOf locates a task within the bucket, or -1.
func (d *Drag) IndexOf(taskID int64) int {
	for i, it := range d.items {
		if it.Task.ID == taskID {
			return i
		}
	}
	return -1
}

// Move repositions the item at from to index to, shifting the items
// in between. Both indices are within this bucket; moving across
// buckets is a category change, not a drag.
func (d *Drag) Move(from, to int) error {
	if from < 0 || from >= len(d.items) || to < 0 || to >= len(d.items) {
		return fmt.Errorf("%w: %d -> %d in bucket of %d", ErrBadIndex, from, to, len(d.items))
	}
	if from == to {
		return nil
	}

	it := d.items[from]
	d.items = append(d.items[:from], d.items[from+1:]...)

	rest := make([]agenda.Item, 0, len(d.items)+1)
	rest = append(rest, d.items[:to]...)
	rest = append(rest, it)
	rest = append(rest, d.items[to:]...)
	d.items = rest

	d.moved[it.Task.ID] = true
	return nil
}

// CommitDrag persists the drag: the dragged tasks and every task that
// was already pinned get their manual position set to their final
// bucket index. Automatic tasks that merely shifted stay automatic, so
// a single drag does not freeze the whole bucket. The pins land in one
// transaction; a commit that fails leaves every position as it was.
func (s *PlannerService) CommitDrag(ctx context.Context, d *Drag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := make(map[int64]int)
	for i, it := range d.items {
		if !d.moved[it.Task.ID] && it.Task.ManualPosition == nil {
			continue
		}
		positions[it.Task.ID] = i
	}
	if len(positions) == 0 {
		return nil
	}

	if err := s.store.SetManualPositions(ctx, positions); err != nil {
		return fmt.Errorf("pin tasks: %w", err)
	}
	return nil
}
