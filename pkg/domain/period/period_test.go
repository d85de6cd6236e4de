package period_test

import (
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOf(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

func TestRangeOf(t *testing.T) {
	ref := time.Date(2024, 2, 15, 13, 45, 0, 0, time.UTC)
	cases := []struct {
		typ   period.Type
		ref   time.Time
		start time.Time
		end   time.Time
	}{
		{period.Monthly, ref, day(2024, 2, 1), endOf(2024, 2, 29)},
		{period.Monthly, day(2023, 2, 10), day(2023, 2, 1), endOf(2023, 2, 28)},
		// 2024-02-15 is a Thursday.
		{period.Weekly, ref, day(2024, 2, 11), endOf(2024, 2, 17)},
		{period.Weekly, day(2024, 2, 11), day(2024, 2, 11), endOf(2024, 2, 17)},
		{period.Weekly, day(2024, 3, 2), day(2024, 2, 25), endOf(2024, 3, 2)},
		{period.Biweekly, ref, day(2024, 2, 1), endOf(2024, 2, 15)},
		{period.Biweekly, day(2024, 2, 16), day(2024, 2, 16), endOf(2024, 2, 29)},
		{period.Bimonthly, ref, day(2024, 1, 1), endOf(2024, 2, 29)},
		{period.Bimonthly, day(2024, 12, 31), day(2024, 11, 1), endOf(2024, 12, 31)},
		{period.Quarterly, day(2024, 5, 20), day(2024, 4, 1), endOf(2024, 6, 30)},
		{period.Semiannual, day(2024, 7, 1), day(2024, 7, 1), endOf(2024, 12, 31)},
		{period.Annual, ref, day(2024, 1, 1), endOf(2024, 12, 31)},
	}
	for _, tc := range cases {
		r := period.RangeOf(tc.typ, tc.ref)
		assert.Equal(t, tc.start, r.Start, "%s %s start", tc.typ, tc.ref)
		assert.Equal(t, tc.end, r.End, "%s %s end", tc.typ, tc.ref)
	}
}

func TestRange_ContainsIsClosed(t *testing.T) {
	r := period.RangeOf(period.Monthly, day(2024, 2, 15))
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.Start.Add(-time.Millisecond)))
	assert.False(t, r.Contains(r.End.Add(time.Millisecond)))
}

func TestTrailing_Chronological(t *testing.T) {
	got := period.Trailing(period.Monthly, day(2024, 3, 31), 3)
	require.Len(t, got, 3)
	assert.Equal(t, day(2024, 1, 1), got[0].Start)
	assert.Equal(t, day(2024, 2, 1), got[1].Start)
	assert.Equal(t, day(2024, 3, 1), got[2].Start)

	weeks := period.Trailing(period.Weekly, day(2024, 1, 3), 2)
	require.Len(t, weeks, 2)
	assert.Equal(t, day(2023, 12, 24), weeks[0].Start)
	assert.Equal(t, day(2023, 12, 31), weeks[1].Start)

	assert.Empty(t, period.Trailing(period.Monthly, day(2024, 1, 1), 0))
}

func TestFilter(t *testing.T) {
	dates := []time.Time{day(2024, 1, 31), day(2024, 2, 1), endOf(2024, 2, 29), day(2024, 3, 1)}
	r := period.RangeOf(period.Monthly, day(2024, 2, 15))
	got := period.Filter(dates, r, func(d time.Time) time.Time { return d })
	assert.Equal(t, []time.Time{day(2024, 2, 1), endOf(2024, 2, 29)}, got)
}

func TestParse(t *testing.T) {
	p, err := period.Parse("")
	require.NoError(t, err)
	assert.Equal(t, period.Monthly, p)

	p, err = period.Parse("quarterly")
	require.NoError(t, err)
	assert.Equal(t, period.Quarterly, p)

	_, err = period.Parse("decade")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
