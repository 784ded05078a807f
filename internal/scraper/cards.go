package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/sports-events/internal/classify"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/fetch"
	"github.com/pfrederiksen/sports-events/internal/logger"
	"github.com/pfrederiksen/sports-events/internal/parse"
)

// Default selectors for federation calendar cards:
//
//	<div class="row no-gutters event">
//	  <div class="col-12 event-row">
//	    <div class="date">Jan 10 - Jan 11</div>
//	    <div class="name">Rio Summer International Open</div>
//	    <div class="local">Arena Cel. Wenceslau Malta, Rio de Janeiro</div>
//	  </div>
//	</div>
const (
	DefaultCardSelector     = "div.event"
	DefaultCardExclude      = ".event-row"
	DefaultRowSelector      = ".event-row"
	DefaultNameSelector     = ".name"
	DefaultDateSelector     = ".date"
	DefaultLocationSelector = ".local"

	minCardTitle = 5
)

// Cards extracts one candidate per card block. Cards without a name or a
// date are skipped. A link inside the card replaces the calendar page as the
// registration link.
type Cards struct {
	CardSelector     string
	Exclude          string
	RowSelector      string
	NameSelector     string
	DateSelector     string
	LocationSelector string

	Category   event.Category
	SportTag   event.SportTag
	Federation string
	// GeoFilter drops cards whose location and title mention no European place.
	GeoFilter bool
}

func (c *Cards) sel(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// Extract implements Extractor.
func (c *Cards) Extract(ctx context.Context, doc *goquery.Document, env Env) ([]event.Candidate, error) {
	base := env.base(doc)
	cards := doc.Find(c.sel(c.CardSelector, DefaultCardSelector)).Not(c.sel(c.Exclude, DefaultCardExclude))

	var out []event.Candidate
	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		if ctx.Err() != nil {
			return false
		}
		cand, reason := c.candidate(card, base, env)
		if reason != "" {
			env.log().Debug("card skipped", logger.Fields{"source": env.Source, "index": i, "reason": reason})
			if reason == "outside_europe" {
				env.count("rejected_geo", 1)
			}
			return true
		}
		out = append(out, cand)
		return true
	})

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Cards) candidate(card *goquery.Selection, base string, env Env) (event.Candidate, string) {
	row := card.Find(c.sel(c.RowSelector, DefaultRowSelector)).First()
	if row.Length() == 0 {
		row = card
	}

	name := row.Find(c.sel(c.NameSelector, DefaultNameSelector)).First()
	if name.Length() == 0 {
		return event.Candidate{}, "no_name"
	}
	title := cleanText(name.Text())
	if len([]rune(title)) < minCardTitle {
		return event.Candidate{}, "short_title"
	}

	date := row.Find(c.sel(c.DateSelector, DefaultDateSelector)).First()
	if date.Length() == 0 || cleanText(date.Text()) == "" {
		return event.Candidate{}, "no_date"
	}

	location := cleanText(row.Find(c.sel(c.LocationSelector, DefaultLocationSelector)).First().Text())
	if c.GeoFilter && !classify.InEurope(location, title) {
		return event.Candidate{}, "outside_europe"
	}
	city, country := parse.ExtractVenueCityCountry(location)

	link := base
	if a := card.Find("a[href]").First(); a.Length() > 0 {
		if resolved := fetch.Resolve(base, a.AttrOr("href", "")); strings.HasPrefix(resolved, "http") {
			link = resolved
		}
	}

	return event.Candidate{
		Source:      env.Source,
		Title:       title,
		DateText:    cleanText(date.Text()),
		City:        city,
		Country:     country,
		FullAddress: location,
		Category:    c.Category,
		SportTag:    c.SportTag,
		Federation:  c.Federation,
		Link:        link,
	}, ""
}
