package store

import (
	"context"
	"sort"
	"sync"

	"inspekt/internal/events"
	"inspekt/pkg/domain"
	"inspekt/pkg/platform/sentinel"
)

// InMemoryStore is the reference event store: a single mutex over a map, so
// every mutation is serialized and Complete is trivially atomic.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[domain.EventID]*events.Event
}

// NewInMemoryStore creates an empty in-memory event store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[domain.EventID]*events.Event)}
}

func (s *InMemoryStore) MergeNew(_ context.Context, evs []*events.Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, e := range evs {
		if _, exists := s.events[e.ID]; exists {
			continue
		}
		cp := *e
		s.events[e.ID] = &cp
		added++
	}
	return added, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.EventID) (*events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context, f Filter) ([]*events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*events.Event
	for _, e := range s.events {
		if f.Matches(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sortEvents(out)
	return out, nil
}

func (s *InMemoryStore) Overdue(_ context.Context, asOf domain.Day) ([]*events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*events.Event
	for _, e := range s.events {
		if e.OverdueAt(asOf) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sortEvents(out)
	return out, nil
}

func (s *InMemoryStore) SetStatus(_ context.Context, id domain.EventID, status events.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	e.Status = status
	return nil
}

func (s *InMemoryStore) Complete(_ context.Context, parentID domain.EventID, correctives []*events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.events[parentID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if parent.Status == events.StatusCompleted {
		return sentinel.ErrInvalidState
	}
	for _, c := range correctives {
		if _, exists := s.events[c.ID]; exists {
			return sentinel.ErrConflict
		}
	}

	parent.Status = events.StatusCompleted
	for _, c := range correctives {
		cp := *c
		s.events[c.ID] = &cp
	}
	return nil
}

func sortEvents(evs []*events.Event) {
	sort.Slice(evs, func(i, j int) bool {
		if !evs[i].ScheduledDate.Equal(evs[j].ScheduledDate) {
			return evs[i].ScheduledDate.Before(evs[j].ScheduledDate)
		}
		return evs[i].ID < evs[j].ID
	})
}
