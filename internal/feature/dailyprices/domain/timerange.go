package domain

import "time"

// TimeRange is a symbolic lookback window over daily price history.
type TimeRange string

// Supported time range tokens.
const (
	TimeRangeOneDay     TimeRange = "1d"
	TimeRangeOneMonth   TimeRange = "1m"
	TimeRangeThreeMonth TimeRange = "3m"
	TimeRangeSixMonth   TimeRange = "6m"
	TimeRangeOneYear    TimeRange = "1y"
	TimeRangeFiveYear   TimeRange = "5y"
	TimeRangeAll        TimeRange = "all"
)

// lookbacks maps each bounded token to its offset from now. "all" is absent
// because it applies no lower bound.
var lookbacks = map[TimeRange]time.Duration{
	TimeRangeOneDay:     24 * time.Hour,
	TimeRangeOneMonth:   30 * 24 * time.Hour,
	TimeRangeThreeMonth: 90 * 24 * time.Hour,
	TimeRangeSixMonth:   180 * 24 * time.Hour,
	TimeRangeOneYear:    365 * 24 * time.Hour,
	TimeRangeFiveYear:   5 * 365 * 24 * time.Hour,
}

// ParseTimeRange validates a raw token. Anything outside the fixed token
// set fails with ErrInvalidTimeRange rather than falling through to "all".
func ParseTimeRange(s string) (TimeRange, error) {
	tr := TimeRange(s)
	if tr == TimeRangeAll {
		return tr, nil
	}
	if _, ok := lookbacks[tr]; !ok {
		return "", ErrInvalidTimeRange
	}
	return tr, nil
}

// Since resolves the lower bound for the window ending at now. The second
// return value is false for the unbounded "all" range. Callers capture now
// once per query so a single call's window stays consistent.
func (tr TimeRange) Since(now time.Time) (time.Time, bool) {
	d, ok := lookbacks[tr]
	if !ok {
		return time.Time{}, false
	}
	return now.Add(-d), true
}
