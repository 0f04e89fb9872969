// Package render turns computed birthday windows into English sentences.
//
// All user-visible wording lives in the embedded message catalog
// (locales/active.en.json). Unit names are a fixed set: "1 years" and
// "1 minutes" are the expected output, so every plural form reads the same.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/birthday-left/internal/config"
	"github.com/tartampluch/birthday-left/internal/period"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Renderer formats periods and sentences from the message catalog.
type Renderer struct {
	localizer *i18n.Localizer
}

// Sentence carries the values substituted into the final sentence.
type Sentence struct {
	Name      string
	Age       int
	Remaining period.Period
	Zone      string
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
)

// New loads the embedded catalog.
func New() (*Renderer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleExt) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompRender,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, config.LocalesDir+"/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompRender,
			config.LogKeyFile, name,
		)
	}

	return &Renderer{localizer: i18n.NewLocalizer(bundle, config.DefaultLanguage)}, nil
}

// Default returns a process-wide Renderer. If the catalog cannot be loaded
// the returned Renderer falls back to message keys.
func Default() *Renderer {
	defaultOnce.Do(func() {
		r, err := New()
		if err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompRender,
				config.LogKeyError, err,
			)
			r = &Renderer{}
		}
		defaultRenderer = r
	})
	return defaultRenderer
}

// Remaining renders the non-zero components of p from years down to minutes.
// Hours and minutes are only shown when no year, month or day is present,
// and seconds are never shown. An empty result becomes "0 minutes".
func (r *Renderer) Remaining(p period.Period) string {
	var parts []string
	add := func(key string, n int) {
		if n != 0 {
			parts = append(parts, r.count(key, n))
		}
	}

	add(config.TKeyUnitYears, p.Years)
	add(config.TKeyUnitMonths, p.Months)
	add(config.TKeyUnitDays, p.Days)
	if len(parts) == 0 {
		add(config.TKeyUnitHours, p.Hours())
		add(config.TKeyUnitMinutes, p.Minutes())
	}

	if len(parts) == 0 {
		return r.count(config.TKeyUnitMinutes, 0)
	}
	return strings.Join(parts, config.ListSeparator)
}

// Birthday renders the sentence for a reference instant inside the window.
func (r *Renderer) Birthday(s Sentence) string {
	return r.sentence(config.TKeySentenceNow, s)
}

// Upcoming renders the sentence for a reference instant before the next window.
func (r *Renderer) Upcoming(s Sentence) string {
	return r.sentence(config.TKeySentenceNext, s)
}

// EventSummary is the calendar event title for a birthday.
func (r *Renderer) EventSummary(name string, age int) string {
	return r.localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyEvtSummary,
		TemplateData: map[string]any{"Name": name, "Count": age},
	})
}

func (r *Renderer) sentence(key string, s Sentence) string {
	return r.localize(&i18n.LocalizeConfig{
		MessageID: key,
		TemplateData: map[string]any{
			"Name":      s.Name,
			"Age":       r.count(config.TKeyAgeYearsOld, s.Age),
			"Remaining": r.Remaining(s.Remaining),
			"Zone":      s.Zone,
		},
	})
}

func (r *Renderer) count(key string, n int) string {
	return r.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
}

// localize translates a key safely, returning the key itself when the
// catalog is unavailable or the key is missing.
func (r *Renderer) localize(lc *i18n.LocalizeConfig) string {
	if r.localizer == nil {
		return lc.MessageID
	}
	msg, err := r.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompRender,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}
