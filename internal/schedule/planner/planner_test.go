package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspekt/internal/events"
	"inspekt/internal/registry"
	"inspekt/pkg/domain"
)

var (
	testProperties = []registry.Property{
		{ID: "P-001", Name: "Harbor Office Park"},
		{ID: "P-002", Name: "Northgate Residences"},
	}
	testVendors = []registry.Vendor{
		{ID: "V-001", Skills: []domain.InspectionKind{domain.KindFireSafety, domain.KindElevator}},
		{ID: "V-002", Skills: []domain.InspectionKind{domain.KindFireSafety, domain.KindElevator}},
		{ID: "V-003", Skills: []domain.InspectionKind{domain.KindFireSafety, domain.KindElevator}},
	}
	testStaff = []registry.Staff{
		{ID: "U-001"}, {ID: "U-002"}, {ID: "U-003"},
	}
)

func TestGenerateMonthlyYear(t *testing.T) {
	base := domain.NewDay(2024, 1, 10)
	got := Generate(testProperties[:1], testVendors, testStaff,
		[]domain.InspectionKind{domain.KindFireSafety}, base)

	require.Len(t, got, 12)

	seen := map[domain.EventID]bool{}
	for i, e := range got {
		assert.Equal(t, 20, e.ScheduledDate.DayOfMonth())
		assert.Equal(t, time.Month(i+1), e.ScheduledDate.Month())
		assert.Equal(t, 2024, e.ScheduledDate.Year())
		assert.Equal(t, e.ScheduledDate, e.DueDate)
		assert.Equal(t, events.StatusScheduled, e.Status)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
	assert.Equal(t, domain.EventID("AP-P-001-fire_safety-20240120"), got[0].ID)
}

func TestGenerateQuarterlyAnchoring(t *testing.T) {
	base := domain.NewDay(2024, 2, 1)
	got := Generate(testProperties[:1], testVendors, testStaff,
		[]domain.InspectionKind{domain.KindElevator}, base)

	require.Len(t, got, 4)
	wantMonths := []time.Month{time.February, time.May, time.August, time.November}
	for i, e := range got {
		assert.Equal(t, wantMonths[i], e.ScheduledDate.Month())
		assert.Equal(t, 15, e.ScheduledDate.DayOfMonth())
	}
}

func TestGenerateYearlyClampsOverflow(t *testing.T) {
	// September base + 5 months lands in February; day 30 clamps to the
	// leap day.
	base := domain.NewDay(2023, 9, 1)
	got := Generate(testProperties[:1], testVendors, testStaff,
		[]domain.InspectionKind{domain.KindElectrical}, base)

	require.Len(t, got, 1)
	assert.Equal(t, "2024-02-29", got[0].ScheduledDate.String())
}

func TestRotationIsDeterministic(t *testing.T) {
	base := domain.NewDay(2024, 1, 10)
	kinds := []domain.InspectionKind{domain.KindFireSafety, domain.KindElevator}

	first := Generate(testProperties, testVendors, testStaff, kinds, base)
	second := Generate(testProperties, testVendors, testStaff, kinds, base)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].VendorID, second[i].VendorID)
		assert.Equal(t, first[i].AssigneeID, second[i].AssigneeID)
	}

	// Assignments are a pure function of (occurrence, kind) indices.
	for _, e := range first {
		require.False(t, e.VendorID.IsNil())
		require.False(t, e.AssigneeID.IsNil())
	}
	// fire_safety is kind 0: first occurrence gets vendor/staff 0.
	assert.Equal(t, domain.VendorID("V-001"), first[0].VendorID)
	assert.Equal(t, domain.StaffID("U-001"), first[0].AssigneeID)
	// second occurrence rotates by one.
	assert.Equal(t, domain.VendorID("V-002"), first[1].VendorID)
	assert.Equal(t, domain.StaffID("U-002"), first[1].AssigneeID)
}

func TestGenerateWithoutEligibleVendorLeavesUnset(t *testing.T) {
	base := domain.NewDay(2024, 1, 10)
	// No vendor is skilled for water hygiene in this fixture.
	got := Generate(testProperties[:1], testVendors, testStaff,
		[]domain.InspectionKind{domain.KindWaterHygiene}, base)

	require.NotEmpty(t, got)
	for _, e := range got {
		assert.True(t, e.VendorID.IsNil())
		assert.False(t, e.AssigneeID.IsNil())
	}
}

func TestGenerateEmptyInputs(t *testing.T) {
	base := domain.NewDay(2024, 1, 10)
	assert.Empty(t, Generate(nil, testVendors, testStaff,
		[]domain.InspectionKind{domain.KindFireSafety}, base))
	assert.Empty(t, Generate(testProperties, testVendors, testStaff, nil, base))
}
