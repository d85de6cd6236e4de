// Package period computes calendar-aware reporting ranges.
package period

import (
	"slices"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
)

// Type is a reporting period length.
type Type string

const (
	Weekly     Type = "weekly"
	Biweekly   Type = "biweekly"
	Monthly    Type = "monthly"
	Bimonthly  Type = "bimonthly"
	Quarterly  Type = "quarterly"
	Semiannual Type = "semiannual"
	Annual     Type = "annual"
)

// Parse validates s. An empty string means monthly.
func Parse(s string) (Type, error) {
	if s == "" {
		return Monthly, nil
	}
	switch t := Type(s); t {
	case Weekly, Biweekly, Monthly, Bimonthly, Quarterly, Semiannual, Annual:
		return t, nil
	}
	return "", domain.Validationf("unknown period %q", s)
}

// Range is an inclusive [Start, End] interval. End is the last millisecond
// of the period.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains is a closed-interval membership test.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// RangeOf returns the period of type t containing ref, in ref's location.
// Weeks run Sunday to Saturday. Biweekly periods are half-months (1st-15th
// and 16th-end). Multi-month periods are aligned to the calendar year.
func RangeOf(t Type, ref time.Time) Range {
	loc := ref.Location()
	y, m, d := ref.Date()
	var start, next time.Time
	switch t {
	case Weekly:
		start = time.Date(y, m, d-int(ref.Weekday()), 0, 0, 0, 0, loc)
		next = start.AddDate(0, 0, 7)
	case Biweekly:
		if d <= 15 {
			start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
			next = time.Date(y, m, 16, 0, 0, 0, 0, loc)
		} else {
			start = time.Date(y, m, 16, 0, 0, 0, 0, loc)
			next = time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
		}
	case Annual:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(1, 0, 0)
	default:
		n := months(t)
		first := time.Month((int(m)-1)/n*n + 1)
		start = time.Date(y, first, 1, 0, 0, 0, 0, loc)
		next = time.Date(y, first+time.Month(n), 1, 0, 0, 0, 0, loc)
	}
	return Range{Start: start, End: next.Add(-time.Millisecond)}
}

func months(t Type) int {
	switch t {
	case Bimonthly:
		return 2
	case Quarterly:
		return 3
	case Semiannual:
		return 6
	}
	return 1
}

// Trailing returns the n periods ending with the one containing ref, oldest
// first.
func Trailing(t Type, ref time.Time, n int) []Range {
	out := make([]Range, 0, max(n, 0))
	for range n {
		r := RangeOf(t, ref)
		out = append(out, r)
		ref = r.Start.Add(-time.Millisecond)
	}
	slices.Reverse(out)
	return out
}

// Filter keeps the items whose date falls inside r.
func Filter[T any](items []T, r Range, date func(T) time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if r.Contains(date(it)) {
			out = append(out, it)
		}
	}
	return out
}
