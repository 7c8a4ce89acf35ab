package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryFeed is the reference feed: a mutex-guarded slice kept newest
// first and trimmed to FeedCapacity.
type InMemoryFeed struct {
	mu      sync.RWMutex
	entries []Notification
	now     func() time.Time
}

// NewInMemoryFeed creates an empty in-memory feed.
func NewInMemoryFeed() *InMemoryFeed {
	return &InMemoryFeed{now: time.Now}
}

// WithNow overrides the clock; used by tests for deterministic timestamps.
func (f *InMemoryFeed) WithNow(now func() time.Time) *InMemoryFeed {
	f.now = now
	return f
}

func (f *InMemoryFeed) Append(_ context.Context, level Level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Timestamp: f.now(),
		Level:     level,
	}
	f.entries = append([]Notification{entry}, f.entries...)
	if len(f.entries) > FeedCapacity {
		f.entries = f.entries[:FeedCapacity]
	}
}

func (f *InMemoryFeed) Recent(_ context.Context) ([]Notification, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Notification{}, f.entries...), nil
}
