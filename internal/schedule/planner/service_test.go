package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventstore "inspekt/internal/events/store"
	"inspekt/internal/notification"
	"inspekt/internal/platform/logger"
	"inspekt/internal/platform/metrics"
	"inspekt/internal/registry"
	"inspekt/pkg/domain"
)

var testMetrics = metrics.New()

func newTestService(t *testing.T) (*Service, *eventstore.InMemoryStore, *notification.InMemoryFeed) {
	t.Helper()
	reg := registry.NewStore()
	registry.Seed(reg)
	store := eventstore.NewInMemoryStore()
	feed := notification.NewInMemoryFeed()
	svc := NewService(reg, store, feed, testMetrics, logger.New())
	return svc, store, feed
}

func TestServiceGenerateIsIdempotent(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	base := domain.NewDay(2024, 1, 10)
	kinds := []domain.InspectionKind{domain.KindFireSafety}

	first, err := svc.Generate(ctx, "P-001", kinds, base)
	require.NoError(t, err)
	assert.Equal(t, 12, first.Generated)
	assert.Equal(t, 12, first.Added)

	second, err := svc.Generate(ctx, "P-001", kinds, base)
	require.NoError(t, err)
	assert.Equal(t, 12, second.Generated)
	assert.Equal(t, 0, second.Added)

	all, err := store.List(ctx, eventstore.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 12)
}

func TestServiceGenerateAllScope(t *testing.T) {
	svc, store, feed := newTestService(t)
	ctx := context.Background()

	res, err := svc.Generate(ctx, domain.ScopeAll,
		[]domain.InspectionKind{domain.KindElevator}, domain.NewDay(2024, 1, 10))
	require.NoError(t, err)
	// 3 seeded properties, quarterly kind.
	assert.Equal(t, 12, res.Added)

	all, err := store.List(ctx, eventstore.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 12)

	entries, err := feed.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, notification.LevelInfo, entries[0].Level)
}

func TestServiceGenerateNoOps(t *testing.T) {
	svc, store, feed := newTestService(t)
	ctx := context.Background()
	base := domain.NewDay(2024, 1, 10)

	t.Run("unknown property scope", func(t *testing.T) {
		res, err := svc.Generate(ctx, "P-404", []domain.InspectionKind{domain.KindFireSafety}, base)
		require.NoError(t, err)
		assert.Zero(t, res.Generated)
	})

	t.Run("empty kind selection", func(t *testing.T) {
		res, err := svc.Generate(ctx, domain.ScopeAll, nil, base)
		require.NoError(t, err)
		assert.Zero(t, res.Generated)
	})

	all, err := store.List(ctx, eventstore.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	// No-ops do not reach the feed.
	entries, err := feed.Recent(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
