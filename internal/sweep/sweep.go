// Package sweep implements the recurring overdue detection pass.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	eventstore "inspekt/internal/events/store"
	"inspekt/internal/notification"
	"inspekt/internal/platform/metrics"
	"inspekt/pkg/domain"
)

// Worker periodically recomputes the overdue set over the full unfiltered
// store and posts one feed entry when it is non-empty. It never mutates
// event status: overdue is a query-time property, so an event leaves the
// set purely because time advances.
type Worker struct {
	store    eventstore.Store
	feed     notification.Feed
	metrics  *metrics.Metrics
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
}

// NewWorker creates a sweep Worker. The clock is injectable so tests can
// pin "today" without waiting on real time.
func NewWorker(
	store eventstore.Store,
	feed notification.Feed,
	m *metrics.Metrics,
	logger *slog.Logger,
	interval time.Duration,
) *Worker {
	return &Worker{
		store:    store,
		feed:     feed,
		metrics:  m,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// WithNow overrides the worker clock; used by tests.
func (w *Worker) WithNow(now func() time.Time) *Worker {
	w.now = now
	return w
}

// Run sweeps on the configured interval until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.SweepOnce(ctx); err != nil {
				w.logger.Error("overdue sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce runs a single overdue pass.
func (w *Worker) SweepOnce(ctx context.Context) error {
	today := domain.DayOf(w.now())
	overdue, err := w.store.Overdue(ctx, today)
	if err != nil {
		return fmt.Errorf("query overdue: %w", err)
	}

	w.metrics.OverdueEvents.Set(float64(len(overdue)))
	if len(overdue) == 0 {
		return nil
	}

	w.logger.Warn("overdue inspections detected", "count", len(overdue))
	w.feed.Append(ctx, notification.LevelError,
		fmt.Sprintf("%d inspections are overdue", len(overdue)))
	return nil
}
