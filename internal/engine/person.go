package engine

import (
	"errors"
	"strings"
	"time"

	"github.com/tartampluch/birthday-left/internal/config"
)

// Person binds a display name to a birth instant in an IANA timezone.
// It is immutable once built by NewPerson.
type Person struct {
	name      string
	birthDate time.Time
	timeZone  string
	location  *time.Location
}

// NewPerson validates the three raw inputs. The timezone is resolved first
// because the birthdate is interpreted as wall time in that zone.
func NewPerson(name, birthDate, timeZone string) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, parseError(config.FieldName, name, errors.New(config.ErrNameEmpty))
	}

	if strings.TrimSpace(timeZone) == "" {
		return nil, parseError(config.FieldTimeZone, timeZone, errors.New(config.ErrTimeZoneEmpty))
	}
	// LoadLocation maps "Local" to the host zone, which is not an IANA name.
	if timeZone == config.TimeZoneLocal {
		return nil, parseError(config.FieldTimeZone, timeZone, errors.New(config.ErrTimeZoneLocal))
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, parseError(config.FieldTimeZone, timeZone, err)
	}

	born, err := parseInstant(birthDate, loc)
	if err != nil {
		return nil, parseError(config.FieldBirthDate, birthDate, err)
	}

	return &Person{
		name:      name,
		birthDate: born,
		timeZone:  timeZone,
		location:  loc,
	}, nil
}

// Name is the display name.
func (p *Person) Name() string { return p.name }

// BirthDate is the birth instant in the person's location.
func (p *Person) BirthDate() time.Time { return p.birthDate }

// TimeZone is the IANA identifier the person was created with.
func (p *Person) TimeZone() string { return p.timeZone }

// Location is the resolved timezone.
func (p *Person) Location() *time.Location { return p.location }

// anniversary returns midnight of the n-th birthday in the person's location.
// A Feb 29 birthday falls on Mar 1 in common years (time.Date normalisation).
func (p *Person) anniversary(n int) time.Time {
	y, m, d := p.birthDate.Date()
	return time.Date(y+n, m, d, 0, 0, 0, 0, p.location)
}
