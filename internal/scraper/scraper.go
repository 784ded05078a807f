package scraper

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/fetch"
	"github.com/pfrederiksen/sports-events/internal/lexicon"
	"github.com/pfrederiksen/sports-events/internal/logger"
)

// ErrNoPayload is returned when a document carries no usable embedded payload.
var ErrNoPayload = errors.New("no embedded payload")

// Extractor turns a fetched listing document into candidates.
type Extractor interface {
	Extract(ctx context.Context, doc *goquery.Document, env Env) ([]event.Candidate, error)
}

// Env is the per-run context handed to an extractor.
type Env struct {
	Source  string
	PageURL string // URL the document was fetched from
	Fetcher fetch.Fetcher
	Now     func() time.Time
	Log     *logger.Logger
	Metrics *logger.Metrics
	// Sleep waits for d or until ctx is done. Nil means a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Env) log() *logger.Logger {
	if e.Log != nil {
		return e.Log
	}
	return logger.Discard()
}

func (e Env) count(stat string, delta int64) {
	if e.Metrics != nil {
		e.Metrics.AddCounter("source."+e.Source+"."+stat, delta)
	}
}

func (e Env) sleep(ctx context.Context, d time.Duration) error {
	if e.Sleep != nil {
		return e.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// base returns the URL relative links resolve against.
func (e Env) base(doc *goquery.Document) string {
	if e.PageURL != "" {
		return e.PageURL
	}
	if doc != nil && doc.Url != nil {
		return doc.Url.String()
	}
	return ""
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstWithClass returns the first descendant of sel whose class attribute
// contains any of the given lowercase substrings.
func firstWithClass(sel *goquery.Selection, substrs ...string) *goquery.Selection {
	return sel.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class := strings.ToLower(s.AttrOr("class", ""))
		for _, sub := range substrs {
			if strings.Contains(class, sub) {
				return true
			}
		}
		return false
	}).First()
}

// imageSrc reads src, falling back to lazy-loading data-src.
func imageSrc(img *goquery.Selection, base string) string {
	src := strings.TrimSpace(img.AttrOr("src", ""))
	if src == "" || strings.HasPrefix(src, "data:") {
		src = strings.TrimSpace(img.AttrOr("data-src", ""))
	}
	if src == "" {
		return ""
	}
	return fetch.Resolve(base, src)
}

// imageNear walks up to levels ancestors of sel and returns the first image
// found.
func imageNear(sel *goquery.Selection, base string, levels int) string {
	parent := sel.Parent()
	for i := 0; i < levels && parent.Length() > 0; i++ {
		if img := parent.Find("img").First(); img.Length() > 0 {
			return imageSrc(img, base)
		}
		parent = parent.Parent()
	}
	return ""
}

// fullAddress joins city and country, omitting an unknown country.
func fullAddress(city, country string) string {
	if country == "" || country == lexicon.Unknown {
		return city
	}
	return city + ", " + country
}

// originOf returns scheme://host of raw, or "" when raw is not absolute.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
