package registry

import (
	"context"
	"sync"

	"inspekt/pkg/domain"
	"inspekt/pkg/platform/sentinel"
)

// Store keeps the reference data in memory. Entries are provisioned at
// boot and never mutated afterwards, so reads dominate and a RWMutex is
// enough. Slices are stored in provisioning order; the planner's rotation
// depends on that order being stable.
type Store struct {
	mu         sync.RWMutex
	properties []Property
	vendors    []Vendor
	staff      []Staff
}

// NewStore creates an empty registry store.
func NewStore() *Store {
	return &Store{}
}

// AddProperty registers a property. Duplicate ids are rejected.
func (s *Store) AddProperty(_ context.Context, p Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.properties {
		if existing.ID == p.ID {
			return sentinel.ErrConflict
		}
	}
	s.properties = append(s.properties, p)
	return nil
}

// AddVendor registers a vendor. Duplicate ids are rejected.
func (s *Store) AddVendor(_ context.Context, v Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.vendors {
		if existing.ID == v.ID {
			return sentinel.ErrConflict
		}
	}
	s.vendors = append(s.vendors, v)
	return nil
}

// AddStaff registers a staff member. Duplicate ids are rejected.
func (s *Store) AddStaff(_ context.Context, m Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.staff {
		if existing.ID == m.ID {
			return sentinel.ErrConflict
		}
	}
	s.staff = append(s.staff, m)
	return nil
}

// Properties returns all properties in provisioning order.
func (s *Store) Properties(_ context.Context) []Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Property{}, s.properties...)
}

// FindProperty returns the property with the given id.
func (s *Store) FindProperty(_ context.Context, id domain.PropertyID) (Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return Property{}, sentinel.ErrNotFound
}

// Vendors returns all vendors in provisioning order.
func (s *Store) Vendors(_ context.Context) []Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Vendor{}, s.vendors...)
}

// Staff returns all staff members in provisioning order.
func (s *Store) Staff(_ context.Context) []Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Staff{}, s.staff...)
}

// FindStaff returns the staff member with the given id.
func (s *Store) FindStaff(_ context.Context, id domain.StaffID) (Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.staff {
		if m.ID == id {
			return m, nil
		}
	}
	return Staff{}, sentinel.ErrNotFound
}
