package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/birthday-left/internal/config"
	"github.com/tartampluch/birthday-left/internal/engine"
	"github.com/tartampluch/birthday-left/internal/period"
	"github.com/tartampluch/birthday-left/internal/render"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

const newYork = "America/New_York"

func mustPerson(t *testing.T, name, birthDate, zone string) *engine.Person {
	t.Helper()
	p, err := engine.NewPerson(name, birthDate, zone)
	require.NoError(t, err)
	return p
}

func mustCalc(t *testing.T, p *engine.Person, reference string) *engine.Calculator {
	t.Helper()
	c, err := engine.NewCalculator(p, reference, nil)
	require.NoError(t, err)
	return c
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

// -----------------------------------------------------------------------------
// Scenarios
// -----------------------------------------------------------------------------

func TestCalculator_OnBirthday(t *testing.T) {
	ny := mustLoad(t, newYork)
	c := mustCalc(t, mustPerson(t, "Alice", "1990-06-15", newYork), "2024-06-15T10:00:00")

	assert.True(t, c.IsBirthday())
	assert.Equal(t, 34, c.Age())
	assert.Equal(t, 35, c.NextAge())
	assert.WithinDuration(t, time.Date(2024, 6, 15, 0, 0, 0, 0, ny), c.WindowStart(), 0)
	assert.WithinDuration(t, time.Date(2024, 6, 16, 0, 0, 0, 0, ny), c.WindowEnd(), 0)
	assert.Equal(t, c.WindowEnd(), c.Boundary())
	assert.Equal(t, period.Period{Clock: 14 * time.Hour}, c.Remaining())
	assert.Equal(t, "Alice is 34 years old today (14 hours remaining in America/New_York)", c.Pretty())
}

func TestCalculator_LastSecondBeforeBirthday(t *testing.T) {
	c := mustCalc(t, mustPerson(t, "Alice", "1990-06-15", newYork), "2024-06-14T23:59:59")

	assert.False(t, c.IsBirthday())
	assert.Equal(t, 33, c.Age())
	assert.Equal(t, 34, c.NextAge())
	assert.Equal(t, period.Period{Clock: time.Second}, c.Remaining())
	// Seconds are never rendered; an otherwise empty period reads "0 minutes".
	assert.Equal(t, "Alice is 34 years old in 0 minutes in America/New_York", c.Pretty())
}

func TestCalculator_StartOfYear(t *testing.T) {
	ny := mustLoad(t, newYork)
	c := mustCalc(t, mustPerson(t, "Alice", "1990-06-15", newYork), "2024-01-01T00:00:00")

	assert.False(t, c.IsBirthday())
	assert.Equal(t, 34, c.NextAge())
	assert.WithinDuration(t, time.Date(2024, 6, 15, 0, 0, 0, 0, ny), c.NextWindowStart(), 0)
	assert.Equal(t, period.Period{Months: 5, Days: 14}, c.Remaining())
	assert.Equal(t, "Alice is 34 years old in 5 months, 14 days in America/New_York", c.Pretty())
}

func TestCalculator_WindowEndIsExclusive(t *testing.T) {
	ny := mustLoad(t, newYork)
	c := mustCalc(t, mustPerson(t, "Alice", "1990-06-15", newYork), "2024-06-16T00:00:00")

	assert.False(t, c.IsBirthday())
	assert.Equal(t, 34, c.Age())
	assert.WithinDuration(t, time.Date(2025, 6, 15, 0, 0, 0, 0, ny), c.Boundary(), 0)
	assert.Equal(t, period.Period{Months: 11, Days: 30}, c.Remaining())
	assert.Equal(t, "Alice is 35 years old in 11 months, 30 days in America/New_York", c.Pretty())
}

func TestCalculator_WindowStartIsInclusive(t *testing.T) {
	c := mustCalc(t, mustPerson(t, "Alice", "1990-06-15", newYork), "2024-06-15T00:00:00")

	assert.True(t, c.IsBirthday())
	assert.Equal(t, period.Period{Days: 1}, c.Remaining())
	assert.Equal(t, "Alice is 34 years old today (1 days remaining in America/New_York)", c.Pretty())
}

func TestCalculator_FirstBirthdayKeepsFixedWording(t *testing.T) {
	kid := mustPerson(t, "Kid", "2023-06-15", newYork)

	today := mustCalc(t, kid, "2024-06-15T10:00:00")
	assert.Equal(t, "Kid is 1 years old today (14 hours remaining in America/New_York)", today.Pretty())

	before := mustCalc(t, kid, "2024-06-14T23:59:00")
	assert.Equal(t, 1, before.NextAge())
	assert.Equal(t, "Kid is 1 years old in 1 minutes in America/New_York", before.Pretty())
}

func TestCalculator_ReferenceWithOffset(t *testing.T) {
	// 03:00 UTC on the 15th is still the 14th in New York.
	c := mustCalc(t, mustPerson(t, "Alice", "1990-06-15", newYork), "2024-06-15T03:00:00Z")

	assert.False(t, c.IsBirthday())
	assert.Equal(t, period.Period{Clock: time.Hour}, c.Remaining())
	assert.Equal(t, newYork, c.Reference().Location().String())
}

// TestCalculator_BirthTimeOfDay checks that the window starts at midnight even
// when the birth instant carries a later time of day.
func TestCalculator_BirthTimeOfDay(t *testing.T) {
	c := mustCalc(t, mustPerson(t, "Alice", "1990-06-15 18:30:00", newYork), "2024-06-15T08:00:00")

	assert.True(t, c.IsBirthday())
	assert.Equal(t, 34, c.Age())
	assert.Equal(t, "16 hours", render.Default().Remaining(c.Remaining()))
}

func TestCalculator_Now(t *testing.T) {
	p := mustPerson(t, "Alice", "1990-06-15", newYork)
	clock := MockClock{CurrentTime: time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)} // 10:00 in New York

	for _, ref := range []string{"now", "NOW", "", "  now "} {
		c, err := engine.NewCalculator(p, ref, clock)
		require.NoError(t, err, ref)
		assert.True(t, c.IsBirthday())
		assert.Equal(t, period.Period{Clock: 14 * time.Hour}, c.Remaining())
	}
}

// -----------------------------------------------------------------------------
// Calendar Edge Cases
// -----------------------------------------------------------------------------

func TestCalculator_Leapling(t *testing.T) {
	p := mustPerson(t, "Leap Baby", "2000-02-29", "UTC")

	tests := []struct {
		name      string
		reference string
		birthday  bool
		age       int
		boundary  time.Time
		desc      string
	}{
		{
			name:      "Common year celebrates on March 1st",
			reference: "2023-03-01T10:00:00",
			birthday:  true,
			age:       23,
			boundary:  time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC),
			desc:      "Go normalises Feb 29 to Mar 1 in common years",
		},
		{
			name:      "Day before in a common year",
			reference: "2023-02-28T23:00:00",
			birthday:  false,
			age:       22,
			boundary:  time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Leap year keeps Feb 29",
			reference: "2024-01-01T00:00:00",
			birthday:  false,
			age:       23,
			boundary:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			desc:      "The next window is the real Feb 29, not Mar 1 + 1 year",
		},
		{
			name:      "Leap day itself",
			reference: "2024-02-29T12:00:00",
			birthday:  true,
			age:       24,
			boundary:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCalc(t, p, tt.reference)
			assert.Equal(t, tt.birthday, c.IsBirthday(), tt.desc)
			assert.Equal(t, tt.age, c.Age())
			assert.WithinDuration(t, tt.boundary, c.Boundary(), 0, tt.desc)
		})
	}
}

func TestCalculator_DaylightSaving(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		reference string
		want      string
	}{
		// 2024-03-10 has 23 hours in New York.
		{"Spring forward", "1990-03-10", "2024-03-10T01:00:00", "22 hours"},
		// 2024-11-03 has 25 hours in New York.
		{"Fall back", "1990-11-03", "2024-11-03T00:30:00", "24 hours, 30 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCalc(t, mustPerson(t, "Dana", tt.birthDate, newYork), tt.reference)
			require.True(t, c.IsBirthday())
			assert.Equal(t, tt.want, render.Default().Remaining(c.Remaining()))
		})
	}
}

// -----------------------------------------------------------------------------
// Properties
// -----------------------------------------------------------------------------

func TestCalculator_BeforeBirthIsRejected(t *testing.T) {
	p := mustPerson(t, "Alice", "1990-06-15 12:00", newYork)

	for _, ref := range []string{"1989-01-01", "1990-06-15T11:59:59"} {
		c, err := engine.NewCalculator(p, ref, nil)
		assert.Nil(t, c)
		require.Error(t, err)
		assert.True(t, errors.Is(err, engine.ErrBeforeBirth), ref)

		var perr *engine.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, config.FieldReference, perr.Field)
		assert.Equal(t, config.ErrBeforeBirth, err.Error())
	}

	// The birth instant itself is age 0 and inside the first window.
	c := mustCalc(t, p, "1990-06-15T12:00:00")
	assert.Equal(t, 0, c.Age())
	assert.True(t, c.IsBirthday())
}

// TestCalculator_Properties sweeps a range of instants around a birthday and
// checks window exclusivity, idempotence and reconstruction of the boundary.
func TestCalculator_Properties(t *testing.T) {
	ny := mustLoad(t, newYork)
	p := mustPerson(t, "Alice", "1990-06-15", newYork)

	start := time.Date(2024, 6, 13, 0, 0, 0, 0, ny)
	for i := 0; i < 4*24*4; i++ {
		ref := start.Add(time.Duration(i) * 15 * time.Minute)

		c, err := engine.NewCalculatorAt(p, ref)
		require.NoError(t, err)

		inWindow := !ref.Before(c.WindowStart()) && ref.Before(c.WindowEnd())
		assert.Equal(t, inWindow, c.IsBirthday(), ref)
		assert.False(t, ref.Before(c.WindowStart()), ref)
		assert.True(t, c.Remaining().AddTo(c.Reference()).Equal(c.Boundary()), ref)

		again, err := engine.NewCalculatorAt(p, ref)
		require.NoError(t, err)
		assert.Equal(t, c.Age(), again.Age())
		assert.Equal(t, c.IsBirthday(), again.IsBirthday())
		assert.Equal(t, c.Remaining(), again.Remaining())
	}
}

func TestCalculator_InvalidReference(t *testing.T) {
	p := mustPerson(t, "Alice", "1990-06-15", newYork)

	c, err := engine.NewCalculator(p, "not a date", nil)
	assert.Nil(t, c)

	var perr *engine.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, config.FieldReference, perr.Field)
	assert.Equal(t, "not a date", perr.Input)
}

func TestCalculator_Report(t *testing.T) {
	c := mustCalc(t, mustPerson(t, "Alice", "1990-06-15", newYork), "2024-01-01T00:00:00")
	r := c.Report()

	assert.Equal(t, "Alice", r.Name)
	assert.Equal(t, newYork, r.TimeZone)
	assert.Equal(t, "1990-06-15T00:00:00-04:00", r.BirthDate)
	assert.Equal(t, "2024-01-01T00:00:00-05:00", r.Reference)
	assert.Equal(t, 33, r.Age)
	assert.Equal(t, 34, r.NextAge)
	assert.False(t, r.IsBirthday)
	assert.Equal(t, "2024-06-15T00:00:00-04:00", r.NextWindowStart)
	assert.Equal(t, engine.RemainingReport{Months: 5, Days: 14}, r.Remaining)
	assert.Equal(t, c.Pretty(), r.Sentence)
}
