// Package report aggregates ledger entries into period summaries.
package report

import (
	"sort"
	"time"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Totals is income, expense and their difference over a set of entries.
type Totals struct {
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Net          decimal.Decimal `json:"net"`
	IncomeCount  int             `json:"incomeCount"`
	ExpenseCount int             `json:"expenseCount"`
}

func (t *Totals) add(e ledger.Entry) {
	if e.Kind == ledger.Income {
		t.Income = t.Income.Add(e.Amount)
		t.IncomeCount++
	} else {
		t.Expense = t.Expense.Add(e.Amount)
		t.ExpenseCount++
	}
	t.Net = t.Income.Sub(t.Expense)
}

// TagTotal groups totals by tag. A nil TagID is the untagged bucket.
type TagTotal struct {
	TagID *uuid.UUID `json:"tagId"`
	Name  string     `json:"name"`
	Color string     `json:"color,omitempty"`
	Totals
}

// DayTotal groups totals by calendar day (YYYY-MM-DD).
type DayTotal struct {
	Date string `json:"date"`
	Totals
}

// Summary is the aggregate of one period. Range is nil for all-time.
type Summary struct {
	Period string        `json:"period"`
	Range  *period.Range `json:"range,omitempty"`
	Totals
	ByTag []TagTotal `json:"byTag"`
	ByDay []DayTotal `json:"byDay"`
}

// TrendPoint is the totals of one period in a trend.
type TrendPoint struct {
	period.Range
	Totals
}

// countable drops the paired entries written by transfers; moving money
// between a family's own accounts is neither income nor expense.
func countable(entries []ledger.Entry) []ledger.Entry {
	out := make([]ledger.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Label == ledger.TransferLabel {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Summarize aggregates entries inside r. A nil r keeps every entry.
func Summarize(name string, entries []ledger.Entry, r *period.Range) Summary {
	entries = countable(entries)
	if r != nil {
		entries = period.Filter(entries, *r, func(e ledger.Entry) time.Time { return e.Date })
	}
	s := Summary{Period: name, Range: r, ByTag: []TagTotal{}, ByDay: []DayTotal{}}
	tags := map[uuid.UUID]*TagTotal{}
	untagged := &TagTotal{}
	days := map[string]*DayTotal{}
	for _, e := range entries {
		s.Totals.add(e)
		if len(e.Tags) == 0 {
			untagged.add(e)
		}
		for _, tg := range e.Tags {
			tt, ok := tags[tg.ID]
			if !ok {
				id := tg.ID
				tt = &TagTotal{TagID: &id, Name: tg.Name, Color: tg.Color}
				tags[tg.ID] = tt
			}
			tt.add(e)
		}
		key := e.Date.Format("2006-01-02")
		dt, ok := days[key]
		if !ok {
			dt = &DayTotal{Date: key}
			days[key] = dt
		}
		dt.add(e)
	}
	for _, tt := range tags {
		s.ByTag = append(s.ByTag, *tt)
	}
	sort.Slice(s.ByTag, func(i, j int) bool { return s.ByTag[i].Name < s.ByTag[j].Name })
	if untagged.IncomeCount+untagged.ExpenseCount > 0 {
		s.ByTag = append(s.ByTag, *untagged)
	}
	for _, dt := range days {
		s.ByDay = append(s.ByDay, *dt)
	}
	sort.Slice(s.ByDay, func(i, j int) bool { return s.ByDay[i].Date < s.ByDay[j].Date })
	return s
}

// Trend totals entries per range, keeping the order of ranges.
func Trend(entries []ledger.Entry, ranges []period.Range) []TrendPoint {
	entries = countable(entries)
	out := make([]TrendPoint, 0, len(ranges))
	for _, r := range ranges {
		p := TrendPoint{Range: r}
		for _, e := range period.Filter(entries, r, func(e ledger.Entry) time.Time { return e.Date }) {
			p.Totals.add(e)
		}
		out = append(out, p)
	}
	return out
}
