package export

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/birthday-left/internal/config"
	"github.com/tartampluch/birthday-left/internal/engine"
	"github.com/tartampluch/birthday-left/internal/render"
)

// writeICS encodes the relevant birthday window as a one-event calendar:
// the current birthday while it lasts, the next one otherwise.
func writeICS(w io.Writer, c *engine.Calculator, r *render.Renderer) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	p := c.Person()
	start, age := c.NextWindowStart(), c.NextAge()
	if c.IsBirthday() {
		start, age = c.WindowStart(), c.Age()
	}
	end := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, start.Location())

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(p, start.Year()))
	event.Props.SetText(config.PropSummary, r.EventSummary(p.Name(), age))
	event.Props.SetText(config.PropDescription, c.Pretty())

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(start)
	event.Props.Set(dtStart)

	dtEnd := ical.NewProp(config.PropDTEnd)
	dtEnd.SetDate(end)
	event.Props.Set(dtEnd)

	// DTSTAMP is the evaluated instant so that the output is reproducible.
	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(c.Reference().UTC())
	event.Props.Set(dtStamp)

	cal.Children = append(cal.Children, event.Component)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return nil
}

// eventUID is a name-based (v5) UUID, stable for a person and year.
func eventUID(p *engine.Person, year int) string {
	input := fmt.Sprintf(config.FormatUIDInput, p.Name(), p.BirthDate().Format(config.DateFormatFullDash), year)
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(input))
	return fmt.Sprintf(config.FormatUID, id, config.ICalDomain)
}
