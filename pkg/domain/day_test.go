package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDayClampsOverflow(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  string
	}{
		{"regular day", 2024, time.March, 15, "2024-03-15"},
		{"feb 30 leap year", 2024, time.February, 30, "2024-02-29"},
		{"feb 30 common year", 2023, time.February, 30, "2023-02-28"},
		{"apr 31", 2024, time.April, 31, "2024-04-30"},
		{"day zero floors to first", 2024, time.June, 0, "2024-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDay(tt.year, tt.month, tt.day).String())
		})
	}
}

func TestDayOfTruncatesToUTCDay(t *testing.T) {
	late := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	early := time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC)
	assert.True(t, DayOf(late).Equal(DayOf(early)))
}

func TestAnchoredMonths(t *testing.T) {
	base := NewDay(2024, time.January, 10)

	// Anchor applies after the month shift, so a late anchor clamps
	// instead of rolling into the next month.
	assert.Equal(t, "2024-02-29", base.AnchoredMonths(1, 30).String())
	assert.Equal(t, "2024-04-15", base.AnchoredMonths(3, 15).String())
	assert.Equal(t, "2025-01-20", base.AnchoredMonths(12, 20).String())
}

func TestDaysUntil(t *testing.T) {
	d := NewDay(2024, time.March, 10)
	assert.Equal(t, 0, d.DaysUntil(d))
	assert.Equal(t, 3, d.DaysUntil(NewDay(2024, time.March, 13)))
	assert.Equal(t, -9, d.DaysUntil(NewDay(2024, time.March, 1)))
	// Across a leap day.
	assert.Equal(t, 11, NewDay(2024, time.February, 28).DaysUntil(d))
}

func TestDayJSONRoundTrip(t *testing.T) {
	d := NewDay(2024, time.March, 10)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-10"`, string(raw))

	var back Day
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`20240310`), &back))
	assert.Error(t, json.Unmarshal([]byte(`"not-a-day"`), &back))
}
