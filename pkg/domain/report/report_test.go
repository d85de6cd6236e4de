package report_test

import (
	"testing"
	"time"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/period"
	"github.com/amirasaad/famledger/pkg/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(kind ledger.Kind, amount string, date time.Time, label string, tags ...ledger.Tag) ledger.Entry {
	return ledger.Entry{
		ID:     uuid.New(),
		Kind:   kind,
		Amount: decimal.RequireFromString(amount),
		Date:   date,
		Label:  label,
		Tags:   tags,
	}
}

func TestSummarize(t *testing.T) {
	food := ledger.Tag{ID: uuid.New(), Name: "Alimentação"}
	home := ledger.Tag{ID: uuid.New(), Name: "Casa"}
	d := func(day int) time.Time { return time.Date(2024, 2, day, 10, 0, 0, 0, time.UTC) }

	entries := []ledger.Entry{
		entry(ledger.Income, "5000", d(5), "Salário"),
		entry(ledger.Expense, "300", d(5), "Mercado", food),
		entry(ledger.Expense, "1200", d(10), "Aluguel", home, food),
		entry(ledger.Expense, "30", d(12), ledger.TransferLabel),
		entry(ledger.Income, "30", d(12), ledger.TransferLabel),
		entry(ledger.Expense, "99", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "Fora"),
	}
	r := period.RangeOf(period.Monthly, d(15))
	s := report.Summarize("monthly", entries, &r)

	assert.True(t, decimal.NewFromInt(5000).Equal(s.Income))
	assert.True(t, decimal.NewFromInt(1500).Equal(s.Expense))
	assert.True(t, decimal.NewFromInt(3500).Equal(s.Net))
	assert.Equal(t, 1, s.IncomeCount)
	assert.Equal(t, 2, s.ExpenseCount)

	require.Len(t, s.ByTag, 3)
	assert.Equal(t, "Alimentação", s.ByTag[0].Name)
	assert.True(t, decimal.NewFromInt(1500).Equal(s.ByTag[0].Expense))
	assert.Equal(t, "Casa", s.ByTag[1].Name)
	assert.Nil(t, s.ByTag[2].TagID)
	assert.True(t, decimal.NewFromInt(5000).Equal(s.ByTag[2].Income))

	require.Len(t, s.ByDay, 2)
	assert.Equal(t, "2024-02-05", s.ByDay[0].Date)
	assert.True(t, decimal.NewFromInt(4700).Equal(s.ByDay[0].Net))
	assert.Equal(t, "2024-02-10", s.ByDay[1].Date)
}

func TestSummarize_AllTime(t *testing.T) {
	entries := []ledger.Entry{
		entry(ledger.Income, "10", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), "x"),
		entry(ledger.Expense, "4", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "y"),
	}
	s := report.Summarize("all", entries, nil)
	assert.Nil(t, s.Range)
	assert.True(t, decimal.NewFromInt(6).Equal(s.Net))
}

func TestTrend(t *testing.T) {
	entries := []ledger.Entry{
		entry(ledger.Expense, "10", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "x"),
		entry(ledger.Expense, "20", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "x"),
		entry(ledger.Income, "50", time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), "x"),
	}
	ranges := period.Trailing(period.Monthly, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 3)
	pts := report.Trend(entries, ranges)
	require.Len(t, pts, 3)
	assert.True(t, decimal.NewFromInt(10).Equal(pts[0].Expense))
	assert.True(t, pts[1].Net.IsZero())
	assert.True(t, decimal.NewFromInt(30).Equal(pts[2].Net))
	assert.Equal(t, ranges[2].Start, pts[2].Start)
}
