package scraper

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/sports-events/internal/classify"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/fetch"
	"github.com/pfrederiksen/sports-events/internal/logger"
	"github.com/pfrederiksen/sports-events/internal/parse"
)

// Pacing defaults for detail page fetches.
const (
	DefaultPaceEvery = 5
	DefaultPaceDelay = time.Second
)

// Counter names recorded by Strict under "source.<name>.".
const (
	StatAccepted      = "accepted"
	StatRejectedSport = "rejected_sport"
	StatRejectedGeo   = "rejected_geo"
	StatFetchFailed   = "fetch_failed"
	StatUntitled      = "untitled"
)

// errNoFetcher is returned when Strict runs without a detail page fetcher.
var errNoFetcher = errors.New("strict extractor requires a fetcher")

// StrictStats summarises one Strict run.
type StrictStats struct {
	Listed        int
	Accepted      int
	RejectedSport int
	RejectedGeo   int
	FetchFailed   int
	Untitled      int
}

// Strict follows every detail URL of an item list and keeps only events whose
// title passes classify.Strict, and optionally the European geography filter.
type Strict struct {
	GeoFilter bool
	PaceEvery int
	PaceDelay time.Duration
	Category  event.Category

	// Stats holds the counts of the last Extract call.
	Stats StrictStats
}

// Extract implements Extractor. env.Fetcher is required.
func (s *Strict) Extract(ctx context.Context, doc *goquery.Document, env Env) ([]event.Candidate, error) {
	if env.Fetcher == nil {
		return nil, errNoFetcher
	}
	base := env.base(doc)
	urls := itemListURLs(doc)
	s.Stats = StrictStats{Listed: len(urls)}
	log := env.log()
	log.Info("detail pages listed", logger.Fields{"source": env.Source, "count": len(urls)})

	every, delay := s.PaceEvery, s.PaceDelay
	if every <= 0 {
		every = DefaultPaceEvery
	}
	if delay <= 0 {
		delay = DefaultPaceDelay
	}

	var out []event.Candidate
	for i, raw := range urls {
		if i > 0 && i%every == 0 {
			if err := env.sleep(ctx, delay); err != nil {
				return out, err
			}
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		detailURL := fetch.Resolve(base, raw)
		if detailURL == "" {
			continue
		}
		page, err := env.Fetcher.Fetch(ctx, detailURL)
		if err != nil {
			s.Stats.FetchFailed++
			env.count(StatFetchFailed, 1)
			log.Warn("detail fetch failed", logger.Fields{"source": env.Source, "url": detailURL}, err)
			continue
		}

		c, stat := s.detail(page, detailURL, env)
		env.count(stat, 1)
		switch stat {
		case StatAccepted:
			s.Stats.Accepted++
			out = append(out, c)
		case StatRejectedSport:
			s.Stats.RejectedSport++
		case StatRejectedGeo:
			s.Stats.RejectedGeo++
		case StatUntitled:
			s.Stats.Untitled++
		}
		if stat != StatAccepted {
			log.Debug("detail page rejected", logger.Fields{"source": env.Source, "url": detailURL, "reason": stat})
		}
	}

	log.Info("strict filtering done", logger.Fields{
		"source":         env.Source,
		"listed":         s.Stats.Listed,
		"accepted":       s.Stats.Accepted,
		"rejected_sport": s.Stats.RejectedSport,
		"rejected_geo":   s.Stats.RejectedGeo,
		"fetch_failed":   s.Stats.FetchFailed,
	})
	return out, nil
}

// detail parses one detail page and returns the candidate with the stat it
// counts toward.
func (s *Strict) detail(page *goquery.Document, pageURL string, env Env) (event.Candidate, string) {
	title := cleanText(page.Find(`meta[property="og:title"]`).First().AttrOr("content", ""))
	if title == "" {
		title = cleanText(page.Find("h1").First().Text())
	}
	if title == "" {
		return event.Candidate{}, StatUntitled
	}

	decision := classify.Strict(title)
	if !decision.Accepted {
		return event.Candidate{}, StatRejectedSport
	}

	c := event.Candidate{
		Source:     env.Source,
		Title:      title,
		Category:   s.category(),
		SportTag:   decision.SportTag,
		Federation: classify.Federation(title),
		Link:       pageURL,
		Image:      fetch.Resolve(pageURL, page.Find(`meta[property="og:image"]`).First().AttrOr("content", "")),
	}

	location := ""
	if ld, ok := firstJSONLDEvent(page); ok && (ld.StartDate != "" || ld.Address != "" || ld.City != "") {
		c.DateText = ld.StartDate
		c.City, c.Country, location = ld.City, ld.Country, ld.Address
		if c.Image == "" && ld.Image != "" {
			c.Image = fetch.Resolve(pageURL, ld.Image)
		}
	}
	if c.DateText == "" {
		if d := page.Find(".event-date").First(); d.Length() > 0 {
			c.DateText = cleanText(d.Text())
		}
	}
	if location == "" {
		if l := page.Find(".event-location").First(); l.Length() > 0 {
			location = cleanText(l.Text())
			c.City, c.Country = parse.ExtractCityCountry(location)
		}
	}

	body := cleanText(page.Find("body").Text())
	if c.DateText == "" {
		if t, ok := parse.ParseDateAt(body, env.now()); ok {
			d := t
			c.Date = &d
		}
	}
	if location == "" {
		if found := parse.FindCityCountry(body); found != "" {
			location = found
			c.City, c.Country = parse.ExtractCityCountry(found)
		}
	}
	c.FullAddress = location

	if s.GeoFilter && !classify.InEurope(location, title) {
		return event.Candidate{}, StatRejectedGeo
	}

	c.ID = detailID(env.Source, pageURL, title)
	return c, StatAccepted
}

// detailID prefers a numeric ID embedded in the URL path.
func detailID(source, pageURL, title string) string {
	if id := pathNumericID(pageURL); id != "" {
		return source + "-" + id
	}
	return source + "-" + parse.Slugify(title)
}

// pathNumericID returns the last all-digit segment of the URL path. A number
// followed by a slug segment ("/events/2025/spring-cup") groups events rather
// than naming one, and yields "".
func pathNumericID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if !isDigits(segments[i]) {
			continue
		}
		for _, after := range segments[i+1:] {
			if strings.Contains(after, "-") {
				return ""
			}
		}
		return segments[i]
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Strict) category() event.Category {
	if s.Category == "" {
		return event.CategoryCombat
	}
	return s.Category
}
