package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/birthday-left/internal/config"
	"github.com/tartampluch/birthday-left/internal/period"
	"github.com/tartampluch/birthday-left/internal/render"
)

// Calculator holds the birthday window of a Person evaluated at one
// reference instant. Every field is computed by the constructor; a
// Calculator is read-only afterwards.
type Calculator struct {
	person    *Person
	reference time.Time

	age             int
	windowStart     time.Time
	windowEnd       time.Time
	nextWindowStart time.Time
	isBirthday      bool
	remaining       period.Period

	// Renderer formats Pretty. Nil means render.Default().
	Renderer *render.Renderer
}

// NewCalculator parses reference in the person's timezone and computes the
// window. An empty reference or "now" reads clock; a nil clock is RealClock.
func NewCalculator(p *Person, reference string, clock Clock) (*Calculator, error) {
	if clock == nil {
		clock = RealClock{}
	}

	var ref time.Time
	if isNow(reference) {
		ref = clock.Now()
	} else {
		t, err := parseInstant(reference, p.location)
		if err != nil {
			return nil, parseError(config.FieldReference, reference, err)
		}
		ref = t
	}
	return NewCalculatorAt(p, ref)
}

// NewCalculatorAt computes the window for an already known instant.
//
// All arithmetic uses calendar fields in the person's location:
// the age is the number of birthdays (starting at midnight) reached by the
// reference, the window is that birthday's civil day, and the next window
// starts at the following birthday's midnight.
func NewCalculatorAt(p *Person, reference time.Time) (*Calculator, error) {
	ref := reference.In(p.location)
	if ref.Before(p.birthDate) {
		return nil, parseError(config.FieldReference, ref.Format(config.DateFormatReport), ErrBeforeBirth)
	}

	age := ref.Year() - p.birthDate.Year()
	for age > 0 && p.anniversary(age).After(ref) {
		age--
	}

	start := p.anniversary(age)
	c := &Calculator{
		person:          p,
		reference:       ref,
		age:             age,
		windowStart:     start,
		windowEnd:       time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, p.location),
		nextWindowStart: p.anniversary(age + 1),
	}

	// ref >= windowStart holds by the choice of age.
	c.isBirthday = ref.Before(c.windowEnd)
	c.remaining = period.Between(ref, c.Boundary())

	slog.Debug(config.MsgCalcDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyName, p.name,
		config.LogKeyZone, p.timeZone,
		config.LogKeyReference, ref.Format(config.DateFormatReport),
		config.LogKeyAge, age,
		config.LogKeyBirthday, c.isBirthday,
		config.LogKeyBoundary, c.Boundary().Format(config.DateFormatReport),
	)
	return c, nil
}

// Person returns the person the window was computed for.
func (c *Calculator) Person() *Person { return c.person }

// Reference is the evaluated instant in the person's location.
func (c *Calculator) Reference() time.Time { return c.reference }

// Age is the number of whole calendar years since birth.
func (c *Calculator) Age() int { return c.age }

// NextAge is Age + 1.
func (c *Calculator) NextAge() int { return c.age + 1 }

// IsBirthday reports whether the reference lies in [WindowStart, WindowEnd).
func (c *Calculator) IsBirthday() bool { return c.isBirthday }

// WindowStart is midnight of the most recently started birthday.
func (c *Calculator) WindowStart() time.Time { return c.windowStart }

// WindowEnd is midnight of the day after WindowStart.
func (c *Calculator) WindowEnd() time.Time { return c.windowEnd }

// NextWindowStart is midnight of the following birthday.
func (c *Calculator) NextWindowStart() time.Time { return c.nextWindowStart }

// Boundary is the instant Remaining counts towards: WindowEnd during the
// birthday, NextWindowStart otherwise.
func (c *Calculator) Boundary() time.Time {
	if c.isBirthday {
		return c.windowEnd
	}
	return c.nextWindowStart
}

// Remaining is the calendar period from the reference to Boundary.
func (c *Calculator) Remaining() period.Period { return c.remaining }

// Pretty renders the result sentence, e.g.
// "Ada is 35 years old in 2 months, 3 days in Europe/London".
func (c *Calculator) Pretty() string {
	r := c.Renderer
	if r == nil {
		r = render.Default()
	}

	if c.isBirthday {
		return r.Birthday(render.Sentence{
			Name:      c.person.name,
			Age:       c.age,
			Remaining: c.remaining,
			Zone:      c.person.timeZone,
		})
	}
	return r.Upcoming(render.Sentence{
		Name:      c.person.name,
		Age:       c.NextAge(),
		Remaining: c.remaining,
		Zone:      c.person.timeZone,
	})
}
