package engine

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tartampluch/birthday-left/internal/config"
)

// parseInstant accepts any date or date-time layout understood by dateparse.
// Values without an explicit offset are read as wall time in loc; values
// with one are converted to loc.
func parseInstant(value string, loc *time.Location) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// isNow reports whether value asks for the current system time.
func isNow(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, config.ReferenceNow)
}
