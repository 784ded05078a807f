package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	UserAgent = "sports-events/1.0 (github.com/pfrederiksen/sports-events)"
	Timeout   = 30 * time.Second
)

// ErrStatus is wrapped by StatusError.
var ErrStatus = errors.New("unexpected status code")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d (%s)", ErrStatus, e.Code, e.URL)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Fetcher retrieves a document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (*goquery.Document, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	return f(ctx, url)
}

// HTTP fetches pages with a plain GET request.
type HTTP struct {
	client    *http.Client
	userAgent string
}

// NewHTTP creates an HTTP fetcher. Zero values select Timeout and UserAgent.
func NewHTTP(timeout time.Duration, userAgent string) *HTTP {
	if timeout <= 0 {
		timeout = Timeout
	}
	if userAgent == "" {
		userAgent = UserAgent
	}
	return &HTTP{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads url and parses the body as HTML.
func (h *HTTP) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	doc, err := Parse(resp.Body, resp.Request.URL.String())
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Parse reads an HTML document from r. baseURL, when non-empty, is recorded
// on the document so extractors can resolve relative links.
func Parse(r io.Reader, baseURL string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	if baseURL != "" {
		if u, err := parseURL(baseURL); err == nil {
			doc.Url = u
		}
	}
	return doc, nil
}
