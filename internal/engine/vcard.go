package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/birthday-left/internal/config"
	"github.com/zalando/go-keyring"
)

// OpenVCard opens a vCard source: an http(s) URL through fetcher, anything
// else as a local file. When user is set, the password is read from the OS
// keyring under config.KeyringService.
func OpenVCard(ctx context.Context, source, user string, fetcher VCardFetcher) (io.ReadCloser, error) {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
		}
		return f, nil
	}

	if fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}

	pass, err := lookupPassword(user)
	if err != nil {
		return nil, err
	}

	rc, err := fetcher.Fetch(ctx, source, user, pass)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The source is reported without its query string, which may hold a token.
		input := u.Scheme + "://" + u.Host + u.Path
		var ferr *FetchError
		if errors.As(err, &ferr) {
			input = ferr.URL
		}
		return nil, parseError(config.FieldVCard, input, fmt.Errorf("%s: %w", config.ErrVCardOpen, err))
	}
	return rc, nil
}

// lookupPassword returns the keyring password for user. A missing entry is
// not an error: the request is then sent with an empty password.
func lookupPassword(user string) (string, error) {
	if user == "" {
		return "", nil
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(config.MsgKeyringMissing,
			config.LogKeyComponent, config.CompVCard,
			config.LogKeyUser, user,
		)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringLookup, err)
	}
	return pass, nil
}

// LoadPersonFromVCard returns the Person for the first card whose display
// name matches name (case-insensitive) and that carries a BDAY. The BDAY is
// read like a command-line birthdate, in timeZone. Malformed cards are skipped.
func LoadPersonFromVCard(r io.Reader, name, timeZone string) (*Person, error) {
	decoder := vcard.NewDecoder(r)
	skipped := 0

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompVCard,
				config.LogKeyError, err)
			if skipped > config.MaxSkippedCards {
				return nil, parseError(config.FieldVCard, name, fmt.Errorf("%s: %w", config.ErrVCardParse, err))
			}
			continue
		}

		if !strings.EqualFold(cardName(card), strings.TrimSpace(name)) {
			continue
		}
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		// vCard allows --MMDD when the year is unknown; an age needs it.
		if strings.HasPrefix(bday.Value, config.VCardNoYearPrefix) {
			return nil, parseError(config.FieldBirthDate, bday.Value, errors.New(config.ErrNoBirthYear))
		}

		slog.Debug(config.MsgVCardMatch,
			config.LogKeyComponent, config.CompVCard,
			config.LogKeyName, name,
			config.LogKeyDOB, bday.Value)
		return NewPerson(cardName(card), bday.Value, timeZone)
	}

	return nil, parseError(config.FieldVCard, name, fmt.Errorf("%s %q", config.ErrNoVCardMatch, name))
}

// cardName prefers the formatted name (FN) over the structured one (N).
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		return strings.TrimSpace(fn.Value)
	}
	if n := card.Name(); n != nil {
		var parts []string
		for _, s := range []string{n.GivenName, n.AdditionalName, n.FamilyName} {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}
