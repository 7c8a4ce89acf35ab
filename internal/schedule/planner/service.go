package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	eventstore "inspekt/internal/events/store"
	"inspekt/internal/notification"
	"inspekt/internal/platform/metrics"
	"inspekt/internal/registry"
	"inspekt/pkg/domain"
	"inspekt/pkg/platform/sentinel"
)

// Service resolves a generation request against the registry, merges the
// generated year into the event store and reports the outcome.
type Service struct {
	registry *registry.Store
	store    eventstore.Store
	feed     notification.Feed
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewService creates a planner Service.
func NewService(
	reg *registry.Store,
	store eventstore.Store,
	feed notification.Feed,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{registry: reg, store: store, feed: feed, metrics: m, logger: logger}
}

// Result summarizes one generation run.
type Result struct {
	Generated int `json:"generated"`
	Added     int `json:"added"`
}

// Generate computes and merges an annual plan. Scope is domain.ScopeAll or
// a single property id; an unknown id and an empty kind selection are
// silent no-ops, not errors. Existing event ids are left untouched.
func (s *Service) Generate(ctx context.Context, scope string, kinds []domain.InspectionKind, base domain.Day) (Result, error) {
	properties, err := s.resolveScope(ctx, scope)
	if err != nil {
		return Result{}, err
	}
	if len(properties) == 0 || len(kinds) == 0 {
		return Result{}, nil
	}

	generated := Generate(properties, s.registry.Vendors(ctx), s.registry.Staff(ctx), kinds, base)
	added, err := s.store.MergeNew(ctx, generated)
	if err != nil {
		return Result{}, fmt.Errorf("merge plan: %w", err)
	}

	s.metrics.PlansGenerated.Inc()
	s.metrics.EventsScheduled.Add(float64(added))
	s.logger.Info("annual plan generated",
		"scope", scope,
		"kinds", len(kinds),
		"generated", len(generated),
		"added", added,
	)
	s.feed.Append(ctx, notification.LevelInfo,
		fmt.Sprintf("Annual plan generated: %d inspections scheduled, %d new", len(generated), added))

	return Result{Generated: len(generated), Added: added}, nil
}

// resolveScope returns the target properties. An unknown id resolves to an
// empty slice so generation degrades to a no-op.
func (s *Service) resolveScope(ctx context.Context, scope string) ([]registry.Property, error) {
	if scope == domain.ScopeAll {
		return s.registry.Properties(ctx), nil
	}
	prop, err := s.registry.FindProperty(ctx, domain.PropertyID(scope))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []registry.Property{prop}, nil
}
