package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/birthday-left/internal/period"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want period.Period
	}{
		{
			name: "Same instant",
			from: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			want: period.Period{},
		},
		{
			name: "Months and days",
			from: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			want: period.Period{Months: 5, Days: 14},
		},
		{
			name: "Sub-day only",
			from: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
			want: period.Period{Clock: 14 * time.Hour},
		},
		{
			name: "Borrow from days",
			from: time.Date(2024, 6, 14, 23, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 6, 16, 0, 30, 0, 0, time.UTC),
			want: period.Period{Days: 1, Clock: 90 * time.Minute},
		},
		{
			name: "Full year",
			from: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			want: period.Period{Years: 1},
		},
		{
			name: "Month end is clamped",
			from: time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			want: period.Period{Months: 1, Days: 1},
		},
		{
			name: "Leap February",
			from: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: period.Period{Months: 1},
		},
		{
			name: "Almost a year",
			from: time.Date(2024, 6, 16, 0, 0, 1, 0, time.UTC),
			to:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			want: period.Period{Months: 11, Days: 29, Clock: 24*time.Hour - time.Second},
		},
		{
			name: "End before start",
			from: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			want: period.Period{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.Between(tt.from, tt.to))
		})
	}
}

// TestBetween_DST checks that a calendar day stays a calendar day across a
// daylight saving transition, while the clock part counts elapsed time.
func TestBetween_DST(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	// 2024-03-10 is 23 hours long in New York.
	from := time.Date(2024, 3, 9, 0, 0, 0, 0, ny)
	to := time.Date(2024, 3, 11, 0, 0, 0, 0, ny)
	assert.Equal(t, period.Period{Days: 2}, period.Between(from, to))

	// From 01:00 on the short day to midnight: 22 elapsed hours.
	from = time.Date(2024, 3, 10, 1, 0, 0, 0, ny)
	to = time.Date(2024, 3, 11, 0, 0, 0, 0, ny)
	got := period.Between(from, to)
	assert.Equal(t, 22, got.Hours())
	assert.True(t, got.AddTo(from).Equal(to))
}

// TestAddTo_Reconstructs verifies Between and AddTo are inverse operations.
func TestAddTo_Reconstructs(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	starts := []time.Time{
		time.Date(2024, 1, 31, 13, 45, 10, 0, ny),
		time.Date(2023, 11, 5, 1, 30, 0, 0, ny),
		time.Date(2024, 2, 29, 0, 0, 0, 0, ny),
		time.Date(2024, 6, 14, 23, 59, 59, 500, ny),
	}
	ends := []time.Time{
		time.Date(2024, 3, 10, 12, 0, 0, 0, ny),
		time.Date(2025, 2, 28, 0, 0, 0, 0, ny),
		time.Date(2025, 6, 15, 0, 0, 0, 0, ny),
		time.Date(2026, 1, 1, 0, 0, 0, 0, ny),
	}

	for _, from := range starts {
		for _, to := range ends {
			if !to.After(from) {
				continue
			}
			p := period.Between(from, to)
			assert.Truef(t, p.AddTo(from).Equal(to), "%v + %+v != %v", from, p, to)
			assert.GreaterOrEqual(t, p.Clock, time.Duration(0))
		}
	}
}

func TestPeriod_ClockComponents(t *testing.T) {
	p := period.Period{Clock: 13*time.Hour + 7*time.Minute + 42*time.Second + 300*time.Millisecond}

	assert.Equal(t, 13, p.Hours())
	assert.Equal(t, 7, p.Minutes())
	assert.Equal(t, 42, p.Seconds())
	assert.False(t, p.IsZero())
	assert.True(t, period.Period{}.IsZero())
}
