package store

import (
	"context"

	"inspekt/internal/events"
	"inspekt/pkg/domain"
)

// Filter scopes a listing. The zero value matches everything; Property may
// also be the explicit wildcard domain.ScopeAll.
type Filter struct {
	Property domain.PropertyID
	Kinds    []domain.InspectionKind
}

// Matches reports whether the event passes the filter.
func (f Filter) Matches(e *events.Event) bool {
	if !f.Property.IsNil() && f.Property.String() != domain.ScopeAll && e.PropertyID != f.Property {
		return false
	}
	if len(f.Kinds) > 0 {
		found := false
		for _, k := range f.Kinds {
			if e.Kind == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store is the authoritative mapping of event id to event. The in-memory
// implementation is the reference behavior; durable deployments swap in the
// Postgres implementation behind this same interface.
type Store interface {
	// MergeNew inserts events whose id is not yet present and skips the
	// rest untouched. Returns the number actually inserted. Duplicate ids
	// are a defined no-op, not an error.
	MergeNew(ctx context.Context, evs []*events.Event) (int, error)

	// FindByID returns the event with the given id.
	FindByID(ctx context.Context, id domain.EventID) (*events.Event, error)

	// List returns events matching the filter, ordered by scheduled date
	// then id.
	List(ctx context.Context, f Filter) ([]*events.Event, error)

	// Overdue returns events with dueDate < asOf that are not completed,
	// over the full unfiltered set.
	Overdue(ctx context.Context, asOf domain.Day) ([]*events.Event, error)

	// SetStatus transitions a single event.
	SetStatus(ctx context.Context, id domain.EventID, status events.Status) error

	// Complete marks the parent Completed and inserts its corrective
	// events in one atomic step. No reader may observe one effect without
	// the other. Fails without side effects when the parent is missing or
	// already completed.
	Complete(ctx context.Context, parentID domain.EventID, correctives []*events.Event) error
}
