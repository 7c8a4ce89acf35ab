package domain

import dErrors "inspekt/pkg/domain-errors"

// Typed identifiers for the core entities. Reference data ids are
// operator-assigned strings (e.g. "P-001"), not UUIDs, so the types wrap
// string rather than uuid.UUID. Event ids are content-derived composites
// (see the planner) which makes plan regeneration idempotent.
//
// Usage: construct via Parse* at trust boundaries to enforce non-emptiness;
// direct casting bypasses validation.
type (
	PropertyID string
	VendorID   string
	StaffID    string
	EventID    string
)

// ParsePropertyID constructs a PropertyID from external input.
func ParsePropertyID(s string) (PropertyID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "property id cannot be empty")
	}
	return PropertyID(s), nil
}

// ParseVendorID constructs a VendorID from external input.
func ParseVendorID(s string) (VendorID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "vendor id cannot be empty")
	}
	return VendorID(s), nil
}

// ParseStaffID constructs a StaffID from external input.
func ParseStaffID(s string) (StaffID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "staff id cannot be empty")
	}
	return StaffID(s), nil
}

// ParseEventID constructs an EventID from external input.
func ParseEventID(s string) (EventID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "event id cannot be empty")
	}
	return EventID(s), nil
}

func (id PropertyID) String() string { return string(id) }
func (id VendorID) String() string   { return string(id) }
func (id StaffID) String() string    { return string(id) }
func (id EventID) String() string    { return string(id) }

func (id PropertyID) IsNil() bool { return id == "" }
func (id VendorID) IsNil() bool   { return id == "" }
func (id StaffID) IsNil() bool    { return id == "" }
func (id EventID) IsNil() bool    { return id == "" }

// ScopeAll is the wildcard plan-generation scope covering every property.
const ScopeAll = "ALL"
