package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/sports-events/internal/classify"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/fetch"
	"github.com/pfrederiksen/sports-events/internal/logger"
	"github.com/pfrederiksen/sports-events/internal/parse"
)

// DefaultPayloadSelector locates the Next.js bootstrap payload.
const DefaultPayloadSelector = "script#__NEXT_DATA__"

// DefaultPayloadPaths are probed in order; the first non-empty array wins.
var DefaultPayloadPaths = [][]string{
	{"props", "pageProps", "events"},
	{"props", "pageProps", "initialData", "events"},
	{"props", "pageProps", "data", "events"},
	{"props", "initialProps", "events"},
	{"props", "pageProps", "upcomingEvents"},
	{"props", "pageProps", "tournaments"},
}

// Alternative field names, most specific first.
var (
	payloadTitleKeys    = []string{"name", "title", "eventName", "tournamentName"}
	payloadDateKeys     = []string{"startDate", "date", "eventDate", "startTime"}
	payloadLocationKeys = []string{"location", "venue"}
	payloadIDKeys       = []string{"id", "eventId"}
	payloadLinkKeys     = []string{"slug", "url"}
	payloadImageKeys    = []string{"image", "imageUrl", "logo"}
)

var (
	compactDatePattern = regexp.MustCompile(`\d{1,2}[-–]\d{1,2}\s+\p{L}+\.?\s+\d{4}|\d{1,2}\s+\p{L}+\.?\s+\d{4}`)
	simpleCityCountry  = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*),\s*([A-Z][a-z]+)`)
)

// Payload extracts events from an embedded JSON payload, falling back to a
// link scrape of the same document when the payload yields nothing.
type Payload struct {
	Selector string
	Paths    [][]string
	// EventPath is appended to the document origin to build a registration
	// link from a bare numeric ID.
	EventPath  string
	HrefMarker string
	Category   event.Category
}

// Extract implements Extractor.
func (p *Payload) Extract(ctx context.Context, doc *goquery.Document, env Env) ([]event.Candidate, error) {
	items, err := p.payloadItems(doc)
	if err != nil {
		env.log().Debug("payload unavailable, scraping links", logger.Fields{"source": env.Source, "reason": err.Error()})
	} else {
		out := p.fromPayload(items, doc, env)
		if len(out) > 0 {
			env.log().Debug("payload extracted", logger.Fields{"source": env.Source, "events": len(out)})
			return out, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.fromLinks(doc, env), nil
}

// payloadItems decodes the payload and returns the first non-empty array
// found along the configured paths.
func (p *Payload) payloadItems(doc *goquery.Document) ([]interface{}, error) {
	selector := p.Selector
	if selector == "" {
		selector = DefaultPayloadSelector
	}
	script := doc.Find(selector).First()
	raw := strings.TrimSpace(script.Text())
	if script.Length() == 0 || raw == "" {
		return nil, ErrNoPayload
	}

	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPayload, err)
	}

	paths := p.Paths
	if len(paths) == 0 {
		paths = DefaultPayloadPaths
	}
	for _, path := range paths {
		if arr, ok := lookup(data, path).([]interface{}); ok && len(arr) > 0 {
			return arr, nil
		}
	}
	return nil, fmt.Errorf("%w: no known event path", ErrNoPayload)
}

func lookup(data interface{}, path []string) interface{} {
	cur := data
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func (p *Payload) fromPayload(items []interface{}, doc *goquery.Document, env Env) []event.Candidate {
	origin := originOf(env.base(doc))
	var out []event.Candidate
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		c, ok := p.payloadCandidate(obj, origin, env)
		if !ok {
			env.log().Debug("payload event skipped", logger.Fields{"source": env.Source, "index": i})
			continue
		}
		out = append(out, c)
	}
	return out
}

func (p *Payload) payloadCandidate(obj map[string]interface{}, origin string, env Env) (event.Candidate, bool) {
	title := cleanText(firstString(obj, payloadTitleKeys))
	if len([]rune(title)) < minLinkTitle {
		return event.Candidate{}, false
	}

	id := firstString(obj, payloadIDKeys)
	link := ""
	if slug := firstString(obj, payloadLinkKeys); slug != "" {
		link = fetch.Resolve(origin, slug)
	} else if id != "" {
		link = fetch.Resolve(origin, strings.TrimSuffix(p.eventPath(), "/")+"/"+id)
	}
	if link == "" {
		return event.Candidate{}, false
	}

	c := event.Candidate{
		Source:     env.Source,
		Title:      title,
		DateText:   firstString(obj, payloadDateKeys),
		Category:   p.category(),
		SportTag:   classify.Combat(title),
		Federation: classify.Federation(title),
		Link:       link,
		Image:      payloadImage(obj, origin),
	}
	if id != "" {
		c.ID = env.Source + "-" + id
	} else {
		c.ID = event.GenerateID(env.Source, link)
	}

	for _, key := range payloadLocationKeys {
		switch loc := obj[key].(type) {
		case string:
			if loc = cleanText(loc); loc != "" {
				c.City, c.Country = parse.ExtractCityCountry(loc)
				c.FullAddress = loc
			}
		case map[string]interface{}:
			c.City = stringField(loc, "city")
			c.Country = countryField(loc["country"])
			if c.Country != "" {
				c.Country = parse.TitleCase(c.Country)
			}
			c.FullAddress = joinNonEmpty(c.City, c.Country)
		default:
			continue
		}
		break
	}
	return c, true
}

func payloadImage(obj map[string]interface{}, origin string) string {
	for _, key := range payloadImageKeys {
		if img := imageField(obj[key]); img != "" {
			return fetch.Resolve(origin, img)
		}
	}
	return ""
}

// fromLinks scrapes event links and reads date, location and image from each
// link's parent element.
func (p *Payload) fromLinks(doc *goquery.Document, env Env) []event.Candidate {
	marker := p.HrefMarker
	if marker == "" {
		marker = DefaultHrefMarker
	}
	base := env.base(doc)
	host := hostOf(base)
	seen := make(map[string]bool)
	var out []event.Candidate

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href := strings.TrimSpace(link.AttrOr("href", ""))
		if !strings.Contains(href, marker) || seen[href] {
			return
		}
		if !strings.HasPrefix(href, "/") && (host == "" || !strings.Contains(href, host)) {
			return
		}
		seen[href] = true

		parent := link.Parent()
		title := cleanText(link.Text())
		if len([]rune(title)) < minLinkTitle {
			title = cleanText(parent.Find("h1, h2, h3, h4, strong").First().Text())
		}
		if len([]rune(title)) < minLinkTitle {
			env.log().Debug("link without title", logger.Fields{"source": env.Source, "href": href})
			return
		}
		registration := fetch.Resolve(base, href)
		if registration == "" {
			return
		}

		c := event.Candidate{
			Source:     env.Source,
			ID:         event.GenerateID(env.Source, registration),
			Title:      title,
			DateText:   linkDate(parent),
			Category:   p.category(),
			SportTag:   classify.Combat(title),
			Federation: classify.Federation(title),
			Link:       registration,
		}

		location := ""
		if l := firstWithClass(parent, "location", "venue", "city", "country"); l.Length() > 0 {
			location = cleanText(l.Text())
		} else if a := parent.Find("address").First(); a.Length() > 0 {
			location = cleanText(a.Text())
		} else {
			location = simpleCityCountry.FindString(parent.Text())
		}
		if location != "" {
			c.City, c.Country = parse.ExtractCityCountry(location)
			c.FullAddress = location
		}
		if img := parent.Find("img").First(); img.Length() > 0 {
			c.Image = imageSrc(img, base)
		}
		out = append(out, c)
	})
	return out
}

// linkDate reads a date from a <time> element, a date-classed element or a
// "10-11 March 2025" pattern in the parent text.
func linkDate(parent *goquery.Selection) string {
	el := parent.Find("time").First()
	if el.Length() == 0 {
		el = firstWithClass(parent, "date")
	}
	if el.Length() > 0 {
		if dt := strings.TrimSpace(el.AttrOr("datetime", "")); dt != "" {
			return dt
		}
		if t := cleanText(el.Text()); t != "" {
			return t
		}
	}
	return compactDatePattern.FindString(parent.Text())
}

func (p *Payload) category() event.Category {
	if p.Category == "" {
		return event.CategoryCombat
	}
	return p.Category
}

func (p *Payload) eventPath() string {
	if p.EventPath == "" {
		return "/en/event"
	}
	return p.EventPath
}

func firstString(obj map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if s := stringField(obj, k); s != "" {
			return s
		}
	}
	return ""
}
