// Package notification keeps the short, user-facing feed of outcomes:
// plan generation, submission results and overdue sweeps.
package notification

import (
	"context"
	"time"
)

// Level grades a feed entry for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one feed entry.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
}

// FeedCapacity bounds the feed to the most recent entries; older ones are
// evicted on append.
const FeedCapacity = 5

// Feed is an append-only, capacity-bounded notification log. Appends never
// fail the caller's flow: implementations log and drop on backend errors.
type Feed interface {
	// Append adds a feed entry, evicting the oldest past FeedCapacity.
	Append(ctx context.Context, level Level, message string)

	// Recent returns up to FeedCapacity entries, newest first.
	Recent(ctx context.Context) ([]Notification, error)
}
