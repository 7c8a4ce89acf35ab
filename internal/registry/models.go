// Package registry holds the static reference data the scheduler operates
// on: the property portfolio, skill-tagged vendors and assignable staff.
package registry

import "inspekt/pkg/domain"

// Property is one building in the managed portfolio. Immutable reference
// data, created at provisioning time.
type Property struct {
	ID      domain.PropertyID `json:"id"`
	Name    string            `json:"name"`
	Address string            `json:"address"`
}

// Vendor is an external contractor. A vendor is eligible for an inspection
// kind iff the kind is in its skill set.
type Vendor struct {
	ID     domain.VendorID         `json:"id"`
	Name   string                  `json:"name"`
	Skills []domain.InspectionKind `json:"skills"`
}

// HasSkill reports whether the vendor is qualified for the kind.
func (v Vendor) HasSkill(kind domain.InspectionKind) bool {
	for _, s := range v.Skills {
		if s == kind {
			return true
		}
	}
	return false
}

// Staff is an assignable internal staff member.
type Staff struct {
	ID   domain.StaffID `json:"id"`
	Name string         `json:"name"`
}
