// Package urgency classifies due dates into tiers for alerting and display.
package urgency

import "inspekt/pkg/domain"

// Tier is the urgency classification of a due date. Tiers are listed in
// priority order, Overdue being the most severe.
type Tier string

const (
	TierOverdue  Tier = "overdue"
	TierDueToday Tier = "due_today"
	TierDueSoon  Tier = "due_soon"
	TierOnTrack  Tier = "on_track"
)

// dueSoonWindowDays is the inclusive look-ahead for the DueSoon tier.
const dueSoonWindowDays = 3

// Classify maps a due date to its urgency tier relative to today. Pure and
// stateless: callers must re-evaluate per request rather than cache the
// result, since "today" advances.
func Classify(due, today domain.Day) Tier {
	days := today.DaysUntil(due)
	switch {
	case days < 0:
		return TierOverdue
	case days == 0:
		return TierDueToday
	case days <= dueSoonWindowDays:
		return TierDueSoon
	default:
		return TierOnTrack
	}
}
