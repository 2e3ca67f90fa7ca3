// Package timerange resolves symbolic dashboard range tokens into concrete windows.
package timerange

import (
	"errors"
	"time"
)

var ErrInvalidRangeToken = errors.New("invalid range token")

const (
	Today      = "today"
	Last7Days  = "7d"
	Last30Days = "30d"
	Last90Days = "90d"
	All        = "all"
)

// allTimeFloor bounds "all" queries; nothing was tracked before the site launched.
var allTimeFloor = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Range is a concrete [Start, End] window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Resolve maps a token to a window ending at now.
func Resolve(token string, now time.Time) (Range, error) {
	switch token {
	case Today:
		year, month, day := now.Date()
		return Range{Start: time.Date(year, month, day, 0, 0, 0, 0, now.Location()), End: now}, nil
	case Last7Days:
		return Range{Start: now.AddDate(0, 0, -7), End: now}, nil
	case Last30Days:
		return Range{Start: now.AddDate(0, 0, -30), End: now}, nil
	case Last90Days:
		return Range{Start: now.AddDate(0, 0, -90), End: now}, nil
	case All:
		return Range{Start: allTimeFloor, End: now}, nil
	default:
		return Range{}, ErrInvalidRangeToken
	}
}

// LastDays returns a trailing window of n days ending at now, for panels that
// use a fixed window independent of the selected dashboard range.
func LastDays(n int, now time.Time) Range {
	return Range{Start: now.AddDate(0, 0, -n), End: now}
}
