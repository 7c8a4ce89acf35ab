// Package events defines the scheduled inspection event, the one entity
// with a mutable lifecycle. Everything else in the system either feeds the
// event store (planner) or derives from it (reports, notifications).
package events

import (
	"inspekt/pkg/domain"
)

// Status is the lifecycle state of an inspection event. Progress is
// forward-only: Scheduled/Incomplete move to Completed on submission, and
// a completion may spawn corrective events that start at InCorrection.
// Reopening is not supported.
type Status string

const (
	StatusScheduled    Status = "scheduled"
	StatusIncomplete   Status = "incomplete"
	StatusInCorrection Status = "in_correction"
	StatusCompleted    Status = "completed"
)

// IsValid reports whether the status is one of the lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusIncomplete, StatusInCorrection, StatusCompleted:
		return true
	}
	return false
}

// Event is one concrete scheduled, submitted or corrective inspection
// instance.
//
// Invariants:
//   - ID is globally unique and is the merge key; regenerating a plan never
//     duplicates an existing id
//   - DueDate is never before the creation context's calendar day
//   - ParentID is set exactly for corrective events
type Event struct {
	ID            domain.EventID        `json:"id"`
	ScheduledDate domain.Day            `json:"scheduled_date"`
	DueDate       domain.Day            `json:"due_date"`
	PropertyID    domain.PropertyID     `json:"property_id"`
	Kind          domain.InspectionKind `json:"kind"`
	AssigneeID    domain.StaffID        `json:"assignee_id"`
	VendorID      domain.VendorID       `json:"vendor_id,omitempty"`
	Status        Status                `json:"status"`
	ParentID      domain.EventID        `json:"parent_id,omitempty"`
}

// IsCorrective reports whether the event was derived from a non-conformity.
func (e *Event) IsCorrective() bool {
	return !e.ParentID.IsNil()
}

// OverdueAt reports whether the event counts as overdue on the given day.
// Overdue is a query-time property, never a stored state: an event leaves
// this set purely because time advances or because it completes.
func (e *Event) OverdueAt(asOf domain.Day) bool {
	return e.DueDate.Before(asOf) && e.Status != StatusCompleted
}
