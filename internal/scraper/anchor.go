package scraper

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/sports-events/internal/classify"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/fetch"
	"github.com/pfrederiksen/sports-events/internal/lexicon"
	"github.com/pfrederiksen/sports-events/internal/logger"
	"github.com/pfrederiksen/sports-events/internal/parse"
)

const (
	// DefaultHrefMarker identifies event links on listing pages.
	DefaultHrefMarker = "/event/"

	minLinkTitle        = 3
	imageAncestorLevels = 3
	maxLinkTitle        = 60
)

var (
	distanceSuffix = regexp.MustCompile(`(?i)\d+\s*km.*$`)
	weekdayTag     = regexp.MustCompile(`\((?:Mon|Tue|Wed|Thu|Fri|Sat|Sun)\)`)
)

// Anchor extracts one candidate per distinct event link.
//
// In the default mode the listing exposes only a title and a URL: the city
// comes from the title, the country from the URL slug and the date from
// DefaultOffsetDays. With ParentFields set the link's parent element is
// searched for a heading, a date field and a location field.
type Anchor struct {
	HrefMarker   string
	ExcludeClass string // links carrying this class are buttons, not events
	TitlePrefix  string // prepended when the title does not start with it

	Category   event.Category
	SportTag   event.SportTag
	Federation string

	// ClassifyRunning replaces SportTag with trail/marathon/running per title.
	ClassifyRunning bool
	ParentFields    bool
	// DefaultOffsetDays dates undated candidates this many days ahead. Zero
	// leaves undated candidates to the normalizer fallback.
	DefaultOffsetDays int
}

// Extract implements Extractor.
func (a *Anchor) Extract(ctx context.Context, doc *goquery.Document, env Env) ([]event.Candidate, error) {
	marker := a.HrefMarker
	if marker == "" {
		marker = DefaultHrefMarker
	}
	base := env.base(doc)
	seen := make(map[string]bool)
	var out []event.Candidate

	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if ctx.Err() != nil {
			return false
		}
		href := strings.TrimSpace(link.AttrOr("href", ""))
		if !strings.Contains(href, marker) || seen[href] {
			return true
		}
		if a.ExcludeClass != "" && link.HasClass(a.ExcludeClass) {
			return true
		}

		c, ok := a.candidate(link, href, base, env)
		if !ok {
			env.log().Debug("link skipped", logger.Fields{"source": env.Source, "href": href})
			return true
		}
		seen[href] = true
		out = append(out, c)
		return true
	})

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func (a *Anchor) candidate(link *goquery.Selection, href, base string, env Env) (event.Candidate, bool) {
	text := cleanText(link.Text())
	title := text
	parent := link.Parent()

	if a.ParentFields {
		if h := parent.Find("h1, h2, h3").First(); h.Length() > 0 && cleanText(h.Text()) != "" {
			title = cleanText(h.Text())
		} else {
			title = titleFromText(text)
		}
	}
	if len([]rune(title)) < minLinkTitle {
		return event.Candidate{}, false
	}
	if a.TitlePrefix != "" && !strings.HasPrefix(strings.ToUpper(title), strings.ToUpper(a.TitlePrefix)) {
		title = a.TitlePrefix + " " + title
	}

	registration := fetch.Resolve(base, href)
	if registration == "" {
		return event.Candidate{}, false
	}

	c := event.Candidate{
		Source:     env.Source,
		ID:         event.GenerateID(env.Source, registration),
		Title:      title,
		Category:   a.Category,
		SportTag:   a.SportTag,
		Federation: a.Federation,
		Link:       registration,
	}
	if a.ClassifyRunning {
		c.SportTag = classify.Running(title)
	}

	if a.ParentFields {
		if d := firstWithClass(parent, "date"); d.Length() > 0 {
			c.DateText = cleanText(d.Text())
		}
		loc := ""
		if l := firstWithClass(parent, "location", "place"); l.Length() > 0 {
			loc = cleanText(l.Text())
		} else {
			loc = parse.FindCityCountry(text)
		}
		if loc != "" {
			c.City, c.Country = parse.ExtractCityCountry(loc)
			c.FullAddress = fullAddress(c.City, c.Country)
		}
		if img := parent.Find("img").First(); img.Length() > 0 {
			c.Image = imageSrc(img, base)
		}
	} else {
		c.City = parse.CityFromTitle(title)
		c.Country = lexicon.CountryForSlug(href)
		c.FullAddress = fullAddress(c.City, c.Country)
		c.Image = imageNear(link, base, imageAncestorLevels)
	}

	if c.DateText == "" && a.DefaultOffsetDays > 0 {
		d := parse.Fallback{OffsetDays: a.DefaultOffsetDays}.Date(env.now())
		c.Date = &d
	}
	return c, true
}

// titleFromText recovers an event title from link text that concatenates
// title, location and date, e.g. "Marathon de ParisParis, France06 Apr, 2025".
func titleFromText(text string) string {
	if i := strings.Index(text, ","); i >= 0 {
		before := distanceSuffix.ReplaceAllString(text[:i], "")
		before = strings.TrimSpace(weekdayTag.ReplaceAllString(before, ""))

		if len([]rune(before)) > maxLinkTitle {
			words := strings.Fields(before)
			for j := len(words) - 1; j > 0; j-- {
				if r := []rune(words[j]); unicode.IsUpper(r[0]) {
					if t := strings.Join(words[:j], " "); len([]rune(t)) > minLinkTitle {
						return t
					}
				}
			}
		}
		return before
	}

	if r := []rune(text); len(r) > maxLinkTitle {
		return strings.TrimSpace(string(r[:maxLinkTitle]))
	}
	return text
}
