package engine

import "github.com/tartampluch/birthday-left/internal/config"

// Report is a serialisable snapshot of a Calculator.
type Report struct {
	Name            string          `json:"name" yaml:"name"`
	TimeZone        string          `json:"timezone" yaml:"timezone"`
	BirthDate       string          `json:"birth_date" yaml:"birth_date"`
	Reference       string          `json:"reference" yaml:"reference"`
	Age             int             `json:"age" yaml:"age"`
	NextAge         int             `json:"next_age" yaml:"next_age"`
	IsBirthday      bool            `json:"is_birthday" yaml:"is_birthday"`
	WindowStart     string          `json:"window_start" yaml:"window_start"`
	WindowEnd       string          `json:"window_end" yaml:"window_end"`
	NextWindowStart string          `json:"next_window_start" yaml:"next_window_start"`
	Remaining       RemainingReport `json:"remaining" yaml:"remaining"`
	Sentence        string          `json:"sentence" yaml:"sentence"`
}

// RemainingReport lists every component of the remaining period, seconds included.
type RemainingReport struct {
	Years   int `json:"years" yaml:"years"`
	Months  int `json:"months" yaml:"months"`
	Days    int `json:"days" yaml:"days"`
	Hours   int `json:"hours" yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
	Seconds int `json:"seconds" yaml:"seconds"`
}

// Report builds the snapshot. Instants use RFC 3339 with the person's offset.
func (c *Calculator) Report() Report {
	p := c.remaining
	return Report{
		Name:            c.person.name,
		TimeZone:        c.person.timeZone,
		BirthDate:       c.person.birthDate.Format(config.DateFormatReport),
		Reference:       c.reference.Format(config.DateFormatReport),
		Age:             c.age,
		NextAge:         c.NextAge(),
		IsBirthday:      c.isBirthday,
		WindowStart:     c.windowStart.Format(config.DateFormatReport),
		WindowEnd:       c.windowEnd.Format(config.DateFormatReport),
		NextWindowStart: c.nextWindowStart.Format(config.DateFormatReport),
		Remaining: RemainingReport{
			Years:   p.Years,
			Months:  p.Months,
			Days:    p.Days,
			Hours:   p.Hours(),
			Minutes: p.Minutes(),
			Seconds: p.Seconds(),
		},
		Sentence: c.Pretty(),
	}
}
