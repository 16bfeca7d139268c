package agenda

import (
	"sort"
	"strings"
	"time"

	"github.com/hay-kot/weekplan/internal/core/calendar"
	"github.com/hay-kot/weekplan/internal/core/task"
)

// Options are the inputs to one categorization pass.
type Options struct {
	// Query filters tasks by case-insensitive substring match on the
	// description. Non-matching tasks are dropped entirely.
	Query string
	// IncludeCompleted keeps the completed bucket visible while a
	// search query is active.
	IncludeCompleted bool
	// Now anchors the rolling week. Zero means time.Now().
	Now time.Time
}

// Warning reports a data-integrity defect found while categorizing: a
// persisted day label that could not be understood, or a completed
// task with no completion instant. The task is still shown; the caller
// decides whether to surface the warning.
type Warning struct {
	TaskID int64
	// Label carries the unparseable day label, when that is the defect.
	Label  string
	Reason string
}

// Result is the ordered, categorized view handed to presentation
// layers.
type Result struct {
	Buckets  []Bucket
	Warnings []Warning
}

// Bucket returns the bucket with the given key, if present.
func (r Result) Bucket(key Key) (Bucket, bool) {
	for _, b := range r.Buckets {
		if b.Key() == key {
			return b, true
		}
	}
	return Bucket{}, false
}

// destination says where classify placed a task.
type destination struct {
	kind   Kind
	offset int
}

// Categorize buckets every task into the rolling 7-day window plus the
// soon/waiting/completed groups, materializes one virtual instance per
// day for daily-recurring tasks, merges overdue items into today, and
// orders every bucket. It is pure given (tasks, opts) and always
// recomputes from the full list.
func Categorize(tasks []task.Task, opts Options) Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	var (
		days      [7][]Item
		immediate []Item
		soon      []Item
		waiting   []Item
		completed []Item
		warnings  []Warning
	)

	for _, t := range tasks {
		if query != "" && !strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}

		// Only non-recurring completions live in the completed bucket;
		// recurring tasks keep cycling through the week.
		if !t.Recurring && t.Completed {
			if t.CompletedAt != nil {
				completed = append(completed, Real(t))
				continue
			}
			// A completed task without a completion instant is a
			// data-integrity defect. Classify it by day so the bug
			// stays visible instead of being masked under completed.
			warnings = append(warnings, Warning{
				TaskID: t.ID,
				Reason: "completed without completion instant, classified by day",
			})
		}

		if t.IsDaily() {
			for off := 0; off < 7; off++ {
				days[off] = append(days[off], VirtualInstance(t, off, CompletedOnOffset(t, off)))
			}
			continue
		}

		if t.Recurring && !AppearsOnOffset(t, 0) {
			continue
		}

		dest, warn := classify(t, now)
		if warn != nil {
			warnings = append(warnings, *warn)
		}

		item := Real(t)
		switch dest.kind {
		case KindDay:
			if dest.offset == 0 {
				immediate = append(immediate, item)
			} else {
				days[dest.offset] = append(days[dest.offset], item)
			}
		case KindSoon:
			soon = append(soon, item)
		case KindWaiting:
			waiting = append(waiting, item)
		}
	}

	// Overdue ("immediate") items are not their own category: they are
	// merged into today before ordering.
	days[0] = append(days[0], immediate...)

	buckets := make([]Bucket, 0, 10)
	for off := 0; off < 7; off++ {
		if len(days[off]) == 0 {
			continue
		}
		b := dayBucket(off, now)
		b.Items = sortedItems(days[off], Less)
		buckets = append(buckets, b)
	}
	if len(soon) > 0 {
		buckets = append(buckets, Bucket{Kind: KindSoon, Items: sortedItems(soon, Less)})
	}
	if len(waiting) > 0 {
		buckets = append(buckets, Bucket{Kind: KindWaiting, Items: sortedItems(waiting, Less)})
	}
	if len(completed) > 0 && (query == "" || opts.IncludeCompleted) {
		buckets = append(buckets, Bucket{Kind: KindCompleted, Items: sortedItems(completed, CompletedLess)})
	}

	return Result{Buckets: buckets, Warnings: warnings}
}

// classify places a single non-daily task. A due date inside the
// next-7-day horizon always drives placement: past dates go to the
// merged today/overdue bucket, upcoming ones to their day. Outside the
// horizon the day label decides, and a task with neither waits.
func classify(t task.Task, now time.Time) (destination, *Warning) {
	if t.UnknownDay != "" {
		return destination{kind: KindWaiting}, &Warning{
			TaskID: t.ID,
			Label:  t.UnknownDay,
			Reason: "unknown day label, shown in waiting",
		}
	}

	if t.DueDate != nil {
		switch d := calendar.DaysBetween(*t.DueDate, now); {
		case d < 0:
			return destination{kind: KindDay, offset: 0}, nil
		case d < 7:
			return destination{kind: KindDay, offset: d}, nil
		}
		// Beyond the horizon: fall through to the label, if any.
	}

	if t.Day != nil {
		switch *t.Day {
		case calendar.None:
			return destination{kind: KindWaiting}, nil
		case calendar.Immediate:
			return destination{kind: KindDay, offset: 0}, nil
		case calendar.Soon:
			return destination{kind: KindSoon}, nil
		default:
			return destination{kind: KindDay, offset: calendar.OffsetOf(*t.Day, now)}, nil
		}
	}

	return destination{kind: KindWaiting}, nil
}

func sortedItems(items []Item, less func(a, b Item) bool) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
