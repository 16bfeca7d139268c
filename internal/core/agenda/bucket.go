package agenda

import (
	"time"

	"github.com/hay-kot/weekplan/internal/core/calendar"
)

// Kind classifies a bucket.
type Kind int

const (
	// KindDay is one of the seven rolling day buckets; Offset picks
	// which. Offset 0 (today) also holds everything overdue.
	KindDay Kind = iota
	KindSoon
	KindWaiting
	KindCompleted
)

// Key identifies a bucket within one categorization result. Offset is
// meaningful only for KindDay.
type Key struct {
	Kind   Kind
	Offset int
}

// Bucket is an ordered group of items under one heading.
type Bucket struct {
	Kind   Kind
	Offset int
	// Label is the weekday label for day buckets; calendar.None
	// otherwise.
	Label calendar.Label
	Items []Item
}

// Key returns the bucket's identity.
func (b Bucket) Key() Key {
	if b.Kind == KindDay {
		return Key{Kind: KindDay, Offset: b.Offset}
	}
	return Key{Kind: b.Kind}
}

// Name returns the canonical heading name. Day buckets carry their
// weekday label's name; translation to display strings happens in the
// presentation layer.
func (b Bucket) Name() string {
	switch b.Kind {
	case KindDay:
		return b.Label.String()
	case KindSoon:
		return "soon"
	case KindWaiting:
		return "waiting"
	default:
		return "completed"
	}
}

// dayBucket builds the bucket shell for a day offset.
func dayBucket(offset int, now time.Time) Bucket {
	return Bucket{
		Kind:   KindDay,
		Offset: offset,
		Label:  calendar.LabelForOffset(offset, now),
	}
}
