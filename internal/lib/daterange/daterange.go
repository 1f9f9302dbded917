// Package daterange filters YYYY-MM-DD dated records by an inclusive range.
package daterange

import (
	"time"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// Range is an inclusive span of calendar dates.
type Range struct {
	Start string
	End   string
}

// Parse validates both bounds as YYYY-MM-DD.
func Parse(start, end string) (Range, error) {
	if start == "" || end == "" {
		return Range{}, models.InvalidArgument("Start date and end date are required")
	}
	if _, err := time.Parse(clock.DateLayout, start); err != nil {
		return Range{}, models.InvalidArgument("invalid start date %q, expected YYYY-MM-DD", start)
	}
	if _, err := time.Parse(clock.DateLayout, end); err != nil {
		return Range{}, models.InvalidArgument("invalid end date %q, expected YYYY-MM-DD", end)
	}
	return Range{Start: start, End: end}, nil
}

// LastDays spans from days before now up to now.
func LastDays(now time.Time, days int) Range {
	return Range{
		Start: now.AddDate(0, 0, -days).Format(clock.DateLayout),
		End:   now.Format(clock.DateLayout),
	}
}

// Contains reports whether date falls within r. A YYYY-MM date stands for the
// first day of that month.
func (r Range) Contains(date string) bool {
	if len(date) == len("2006-01") {
		date += "-01"
	}
	return date >= r.Start && date <= r.End
}

// Filter keeps the items whose date lies within r, preserving order.
func Filter[T any](items []T, r Range, date func(T) string) []T {
	out := []T{}
	for _, item := range items {
		if r.Contains(date(item)) {
			out = append(out, item)
		}
	}
	return out
}
