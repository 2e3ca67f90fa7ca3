// Package stats holds the numeric helpers shared by the aggregators.
package stats

import (
	"sort"
	"time"
)

// Percentage returns 100*part/total, or 0 when total is 0. Never NaN or Inf.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Ratio returns num/den, or 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Median returns the element at index floor(n/2) of the sorted values. For
// even-length input this is the upper of the two middle elements, not their
// average; dashboards have always displayed this value, so keep the index as is.
// An empty slice yields 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// WholeDays returns the elapsed whole days between from and to, floored.
func WholeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// Time-to-close cohort labels.
const (
	CohortWeek      = "≤ 7 days"
	CohortMonth     = "8-30 days"
	CohortTwoMonths = "31-60 days"
	CohortLonger    = "> 60 days"
)

// Cohort buckets an elapsed whole-day count into its time-to-close cohort.
func Cohort(days int) string {
	switch {
	case days <= 7:
		return CohortWeek
	case days <= 30:
		return CohortMonth
	case days <= 60:
		return CohortTwoMonths
	default:
		return CohortLonger
	}
}
