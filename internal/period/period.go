// Package period implements calendar-aware differences between two instants.
//
// A Period counts whole calendar months and days first (so a "month" follows
// the actual month lengths, leap years included) and keeps the sub-day
// remainder as elapsed time. Applying the Period back with AddTo always lands
// on the original end instant, including across DST transitions.
package period

import "time"

// Period is a calendar duration.
type Period struct {
	Years  int
	Months int
	Days   int

	// Clock is the elapsed remainder below one calendar day.
	Clock time.Duration
}

// Between returns the Period from a to b, evaluated in a's location.
// If b is before a the zero Period is returned.
func Between(a, b time.Time) Period {
	b = b.In(a.Location())
	if !b.After(a) {
		return Period{}
	}

	months := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	for months > 0 && addMonths(a, months).After(b) {
		months--
	}
	cursor := addMonths(a, months)

	days := 0
	for !cursor.AddDate(0, 0, days+1).After(b) {
		days++
	}
	cursor = cursor.AddDate(0, 0, days)

	return Period{
		Years:  months / 12,
		Months: months % 12,
		Days:   days,
		Clock:  b.Sub(cursor),
	}
}

// AddTo applies the Period to t: months (clamped to the target month's
// length), then days, then the clock remainder.
func (p Period) AddTo(t time.Time) time.Time {
	return addMonths(t, p.Years*12+p.Months).AddDate(0, 0, p.Days).Add(p.Clock)
}

// IsZero reports whether every component is zero.
func (p Period) IsZero() bool {
	return p == Period{}
}

// Hours returns the whole hours of the clock remainder.
func (p Period) Hours() int {
	return int(p.Clock / time.Hour)
}

// Minutes returns the whole minutes left after Hours.
func (p Period) Minutes() int {
	return int(p.Clock % time.Hour / time.Minute)
}

// Seconds returns the whole seconds left after Minutes.
func (p Period) Seconds() int {
	return int(p.Clock % time.Minute / time.Second)
}

// addMonths moves t by n calendar months keeping the wall clock.
// The day of month is clamped, so Jan 31 + 1 month is the last day of February.
func addMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
