// Package planner turns the inspection-kind catalog into a year of
// concrete scheduled events with deterministic vendor and staff rotation.
package planner

import (
	"fmt"

	"inspekt/internal/events"
	"inspekt/internal/registry"
	"inspekt/pkg/domain"
)

// Anchor days-of-month per frequency. Fixed anchoring is a deliberate
// simplification; days that overflow a month clamp to its last valid day
// (see domain.NewDay).
const (
	monthlyAnchorDay   = 20
	quarterlyAnchorDay = 15
	yearlyAnchorDay    = 30
	yearlyMonthOffset  = 5
)

var quarterlyMonthOffsets = []int{0, 3, 6, 9}

// Generate computes one year of scheduled events for the given properties
// and kinds, starting at base. Pure: rerunning with the same inputs yields
// identical events, ids and assignments.
//
// Rotation spreads load without randomness: for the occurrence at index occ
// of the kind at index kindIdx, the vendor is the skill-eligible candidate
// at (occ+kindIdx) mod candidates and the assignee is the staff member at
// (occ+kindIdx) mod staff. Kinds rotate in their argument order, so callers
// must keep that order stable between runs.
func Generate(
	properties []registry.Property,
	vendors []registry.Vendor,
	staff []registry.Staff,
	kinds []domain.InspectionKind,
	base domain.Day,
) []*events.Event {
	var out []*events.Event

	for _, prop := range properties {
		for kindIdx, kind := range kinds {
			freq, ok := kind.DefaultFrequency()
			if !ok {
				continue
			}

			var candidates []registry.Vendor
			for _, v := range vendors {
				if v.HasSkill(kind) {
					candidates = append(candidates, v)
				}
			}

			for occ, date := range occurrences(base, freq) {
				e := &events.Event{
					ID:            planEventID(prop.ID, kind, date),
					ScheduledDate: date,
					DueDate:       date,
					PropertyID:    prop.ID,
					Kind:          kind,
					Status:        events.StatusScheduled,
				}
				if len(staff) > 0 {
					e.AssigneeID = staff[(occ+kindIdx)%len(staff)].ID
				}
				// No skill-matching vendor is not an error; the
				// assignment stays unset.
				if len(candidates) > 0 {
					e.VendorID = candidates[(occ+kindIdx)%len(candidates)].ID
				}
				out = append(out, e)
			}
		}
	}
	return out
}

// occurrences lists the scheduled days for one year of the given frequency
// starting at base's month.
func occurrences(base domain.Day, freq domain.Frequency) []domain.Day {
	switch freq {
	case domain.FrequencyMonthly:
		days := make([]domain.Day, 0, 12)
		for i := 0; i < 12; i++ {
			days = append(days, base.AnchoredMonths(i, monthlyAnchorDay))
		}
		return days
	case domain.FrequencyQuarterly:
		days := make([]domain.Day, 0, len(quarterlyMonthOffsets))
		for _, off := range quarterlyMonthOffsets {
			days = append(days, base.AnchoredMonths(off, quarterlyAnchorDay))
		}
		return days
	case domain.FrequencyYearly:
		return []domain.Day{base.AnchoredMonths(yearlyMonthOffset, yearlyAnchorDay)}
	default:
		return nil
	}
}

// planEventID builds the content-derived composite id that makes plan
// regeneration an idempotent merge.
func planEventID(property domain.PropertyID, kind domain.InspectionKind, date domain.Day) domain.EventID {
	return domain.EventID(fmt.Sprintf("AP-%s-%s-%s", property, kind, date.Compact()))
}
