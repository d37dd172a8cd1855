package valuation

import "fmt"

// Range selects the time window of snapshots a caller wants back.
type Range string

// Supported range selectors.
const (
	RangeWeek    Range = "1w"
	RangeMonth   Range = "1m"
	RangeQuarter Range = "3m"
	RangeHalf    Range = "6m"
	RangeYear    Range = "1y"
	RangeAll     Range = "all"
)

// ParseRange validates a range selector string.
func ParseRange(str string) (Range, error) {
	switch Range(str) {
	case RangeWeek, RangeMonth, RangeQuarter, RangeHalf, RangeYear, RangeAll:
		return Range(str), nil
	}
	return "", fmt.Errorf("invalid range selector %q", str)
}

// Window is the resolved pair of simulation start and output filter for one
// replay. The simulation must begin at or before the first ledger entry so
// running cost basis is correct, while emitted snapshots are filtered to the
// window the caller asked for.
type Window struct {
	RequestedStart Day // first day eligible for output
	ReplayStart    Day // first simulated day, never after RequestedStart or the earliest entry
	End            Day // last simulated and emitted day (today)
}

// ResolveWindow computes the replay window for a range selector.
//
// The requested start is the lookback relative to today ("all" starts at the
// earliest ledger entry). The replay start is the earlier of the requested
// start and the earliest entry day; with an empty ledger both collapse to today.
func ResolveWindow(r Range, today, earliestEntry Day) Window {
	if today.IsZero() {
		today = Today()
	}

	var requested Day
	switch r {
	case RangeWeek:
		requested = today.AddDays(-7)
	case RangeMonth:
		requested = today.AddDate(0, -1, 0)
	case RangeQuarter:
		requested = today.AddDate(0, -3, 0)
	case RangeHalf:
		requested = today.AddDate(0, -6, 0)
	case RangeYear:
		requested = today.AddDate(-1, 0, 0)
	default: // RangeAll
		requested = earliestEntry
		if requested.IsZero() {
			requested = today
		}
	}

	replayStart := minDay(requested, earliestEntry)
	if replayStart.IsZero() {
		replayStart = today
	}

	return Window{
		RequestedStart: requested,
		ReplayStart:    replayStart,
		End:            today,
	}
}

// Contains reports whether a simulated day falls inside the output window.
func (w Window) Contains(day Day) bool {
	return !day.Before(w.RequestedStart) && !day.After(w.End)
}
