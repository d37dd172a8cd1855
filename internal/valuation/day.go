package valuation

import (
	"fmt"
	"time"
)

// DayFormat is the canonical string representation of a replay day.
const DayFormat = "2006-01-02"

// Day represents a calendar date with day-level granularity, anchored at
// midnight UTC. The replay engine works exclusively in days: transaction
// dates recorded as timestamps are truncated to their calendar date on parse,
// so mixed-precision inputs never reach a comparison.
type Day struct {
	t time.Time
}

// NewDay returns a normalized Day for the given year, month, and day.
func NewDay(year int, month time.Month, day int) Day {
	return Day{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its calendar date in UTC.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return NewDay(y, m, d)
}

// Today returns the current calendar date in UTC.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a date string in YYYY-MM-DD or RFC3339 format.
// RFC3339 timestamps are truncated to their calendar date.
func ParseDay(str string) (Day, error) {
	if t, err := time.Parse(DayFormat, str); err == nil {
		return DayOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", str, err)
	}
	return DayOf(t), nil
}

// Before reports whether d is before x.
func (d Day) Before(x Day) bool { return d.t.Before(x.t) }

// After reports whether d is after x.
func (d Day) After(x Day) bool { return d.t.After(x.t) }

// Equal reports whether d and x are the same calendar date.
func (d Day) Equal(x Day) bool { return d.t.Equal(x.t) }

// Compare returns -1, 0, or 1 depending on whether d is before, equal to, or after x.
func (d Day) Compare(x Day) int { return d.t.Compare(x.t) }

// Next returns the following calendar day.
func (d Day) Next() Day { return Day{d.t.AddDate(0, 0, 1)} }

// AddDays returns the day n days after d (or before, for negative n).
func (d Day) AddDays(n int) Day { return Day{d.t.AddDate(0, 0, n)} }

// AddDate returns the day the given number of years, months, and days after d.
func (d Day) AddDate(years, months, days int) Day {
	return DayOf(d.t.AddDate(years, months, days))
}

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Time returns the canonical time representation of the day (midnight UTC).
func (d Day) Time() time.Time { return d.t }

// String formats the day as YYYY-MM-DD.
func (d Day) String() string { return d.t.Format(DayFormat) }

// minDay returns the earlier of two days, ignoring zero values.
func minDay(a, b Day) Day {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	if b.Before(a) {
		return b
	}
	return a
}
