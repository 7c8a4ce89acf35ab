package urgency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inspekt/pkg/domain"
)

func TestClassify(t *testing.T) {
	today := domain.NewDay(2024, 3, 15)

	tests := []struct {
		name string
		due  domain.Day
		want Tier
	}{
		{"one day past is overdue", today.AddDays(-1), TierOverdue},
		{"far past is overdue", today.AddDays(-90), TierOverdue},
		{"same day is due today", today, TierDueToday},
		{"tomorrow is due soon", today.AddDays(1), TierDueSoon},
		{"window edge is due soon", today.AddDays(3), TierDueSoon},
		{"past the window is on track", today.AddDays(4), TierOnTrack},
		{"next year is on track", today.AddDays(365), TierOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.due, today))
		})
	}
}

func TestClassifyAcrossMonthBoundary(t *testing.T) {
	// Due March 2nd, evaluated February 28th of a leap year: 3 days out.
	today := domain.NewDay(2024, 2, 28)
	due := domain.NewDay(2024, 3, 2)
	assert.Equal(t, TierDueSoon, Classify(due, today))
}
