package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"slices"

	"github.com/tartampluch/birthday-left/internal/config"
)

// ErrNotVCard is returned when a server answers with a document that cannot
// be a vCard, typically an HTML login or error page.
var ErrNotVCard = errors.New(config.ErrNotVCard)

// VCardFetcher retrieves a remote vCard document.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// FetchError describes a failed vCard download. URL never carries the query
// string, so the error can be printed without leaking tokens.
type FetchError struct {
	URL    string
	Status int // 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d): %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPFetcher fetches address books over http(s).
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher bounded by config.HTTPTimeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch downloads an address book, optionally with basic auth. The response
// must be 200 with a vCard-compatible Content-Type; the body is capped at
// config.MaxHTTPResponseSize bytes.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	safeURL := u.Scheme + "://" + u.Host + u.Path
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, safeURL),
	)
	log.Debug(config.MsgVCardFetch)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &FetchError{URL: safeURL, Err: err}
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.AcceptVCard)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: safeURL, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgVCardStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, &FetchError{URL: safeURL, Status: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	contentType := resp.Header.Get(config.HeaderContentType)
	if !isVCardMediaType(contentType) {
		_ = resp.Body.Close()
		log.Warn(config.MsgVCardType, slog.String(config.LogKeyContentType, contentType))
		return nil, &FetchError{
			URL:    safeURL,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%w: %s", ErrNotVCard, contentType),
		}
	}

	log.Debug(config.MsgVCardLength, slog.Int64(config.LogKeyLength, resp.ContentLength))

	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// isVCardMediaType accepts the registered vCard types, their legacy aliases
// and the generic types plain file servers use. A missing header is accepted.
func isVCardMediaType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return slices.Contains(config.VCardMediaTypes, mediaType)
}
