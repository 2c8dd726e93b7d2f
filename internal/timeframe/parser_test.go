package timeframe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsight/internal/timeframe"
)

func TestParseDateRange(t *testing.T) {
	testCases := []struct {
		name        string
		from, to    string
		expectFrom  *time.Time
		expectTo    *time.Time
		expectError bool
	}{
		{
			name: "Both bounds",
			from: "2024-01-01", to: "2024-01-31",
			expectFrom: ptr(date(2024, 1, 1)), expectTo: ptr(date(2024, 1, 31)),
		},
		{
			name: "Empty values leave range open",
		},
		{
			name: "Malformed from is ignored",
			from: "01/02/2024", to: "2024-01-31",
			expectTo:    ptr(date(2024, 1, 31)),
			expectError: true,
		},
		{
			name: "Malformed to is ignored",
			from: "2024-01-01", to: "not-a-date",
			expectFrom:  ptr(date(2024, 1, 1)),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := timeframe.ParseDateRange(tc.from, tc.to)
			if tc.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, timeframe.ErrMalformedDate)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expectFrom, r.From)
			assert.Equal(t, tc.expectTo, r.To)
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	r := timeframe.DateRange{From: ptr(date(2024, 1, 10)), To: ptr(date(2024, 1, 20))}

	assert.True(t, r.Contains(date(2024, 1, 10)))
	assert.True(t, r.Contains(time.Date(2024, 1, 20, 23, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(date(2024, 1, 9)))
	assert.False(t, r.Contains(date(2024, 1, 21)))

	open := timeframe.DateRange{}
	assert.True(t, open.IsZero())
	assert.True(t, open.Contains(date(1999, 1, 1)))

	from, to := r.Format()
	assert.Equal(t, "2024-01-10", from)
	assert.Equal(t, "2024-01-20", to)
}

func ptr(t time.Time) *time.Time {
	return &t
}
