package domain

import (
	"fmt"
	"time"
)

// Day is a calendar day with no time-of-day component. Due-date comparison
// and arithmetic must happen on Day, never on raw time.Time, so that an
// event scheduled for "today" compares equal to any timestamp within today.
//
// Invariant: the wrapped time is always midnight UTC.
type Day struct {
	t time.Time
}

// NewDay builds a Day from a year, month and day-of-month. A day-of-month
// that does not exist in the target month clamps to the month's last valid
// day (e.g. Feb 30 becomes Feb 28/29). This is the documented overflow
// policy for anchored scheduling.
func NewDay(year int, month time.Month, day int) Day {
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its calendar day.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses the wire format "2006-01-02".
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// AddDays returns the day n days later (earlier for negative n).
func (d Day) AddDays(n int) Day {
	return DayOf(d.t.AddDate(0, 0, n))
}

// AnchoredMonths returns the day in the month `offset` months after d's
// month, anchored to the given day-of-month with overflow clamping. The
// anchor is applied after the month shift so a late anchor never rolls
// into the following month.
func (d Day) AnchoredMonths(offset, anchorDay int) Day {
	y, m, _ := d.t.Date()
	shifted := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	return NewDay(shifted.Year(), shifted.Month(), anchorDay)
}

// DaysUntil returns the whole-day distance from d to other; negative when
// other lies in the past relative to d.
func (d Day) DaysUntil(other Day) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

// Equal reports whether the two values are the same calendar day.
func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

// IsZero reports whether the Day is unset.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Year, Month and DayOfMonth expose the calendar components.
func (d Day) Year() int         { return d.t.Year() }
func (d Day) Month() time.Month { return d.t.Month() }
func (d Day) DayOfMonth() int   { return d.t.Day() }
func (d Day) Time() time.Time   { return d.t }
func (d Day) String() string    { return d.t.Format("2006-01-02") }

// Compact returns the yyyyMMdd form used inside composite event ids.
func (d Day) Compact() string { return d.t.Format("20060102") }

// MarshalJSON encodes the Day as "2006-01-02".
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes the "2006-01-02" wire format.
func (d *Day) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("day must be a JSON string")
	}
	parsed, err := ParseDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month normalizes to this month's last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
