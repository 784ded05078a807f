package scraper

import (
	"context"
	"testing"

	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/logger"
)

const ibjjfCalendar = `<html><body><div class="container">
<div class="row no-gutters event">
  <div class="col-12 event-row">
    <div class="date">Jan 10 - Jan 11</div>
    <div class="name">Rio Summer International Open IBJJF Jiu-Jitsu No-Gi Championship 2025</div>
    <div class="local">Arena Carioca 1, Rio de Janeiro</div>
  </div>
</div>
<div class="row event">
  <div class="event-row">
    <div class="name">European Open</div>
    <div class="date">Jan 22 - Jan 26</div>
    <div class="local">Pavilhão, Lisboa, Portugal</div>
    <a href="/events/european-open">Info</a>
  </div>
</div>
<div class="row event"><div class="event-row"><div class="name">Missing Date Open</div></div></div>
<div class="row event"><div class="event-row"><div class="date">Feb 1</div></div></div>
<div class="row event"><div class="event-row"><div class="name">Cup</div><div class="date">Feb 1</div></div></div>
</div></body></html>`

func ibjjfCards(geo bool) *Cards {
	return &Cards{
		Category:   event.CategoryCombat,
		SportTag:   event.SportJJB,
		Federation: "IBJJF",
		GeoFilter:  geo,
	}
}

func TestCards_Extract(t *testing.T) {
	pageURL := "https://ibjjf.com/events/calendar"
	got, err := ibjjfCards(false).Extract(context.Background(), mustDoc(t, ibjjfCalendar, pageURL), testEnv("ibjjf", pageURL))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(got), got)
	}

	tests := []struct {
		title, dateText, city, country, full, link string
	}{
		{
			"Rio Summer International Open IBJJF Jiu-Jitsu No-Gi Championship 2025", "Jan 10 - Jan 11",
			"Rio de Janeiro", "Brazil", "Arena Carioca 1, Rio de Janeiro", pageURL,
		},
		{
			"European Open", "Jan 22 - Jan 26",
			"Lisboa", "Portugal", "Pavilhão, Lisboa, Portugal", "https://ibjjf.com/events/european-open",
		},
	}
	for i, tt := range tests {
		c := got[i]
		if c.Title != tt.title || c.DateText != tt.dateText {
			t.Errorf("candidate %d title/date = %q/%q", i, c.Title, c.DateText)
		}
		if c.City != tt.city || c.Country != tt.country || c.FullAddress != tt.full {
			t.Errorf("candidate %d location = %q/%q/%q", i, c.City, c.Country, c.FullAddress)
		}
		if c.Link != tt.link {
			t.Errorf("candidate %d link = %q, want %q", i, c.Link, tt.link)
		}
		if c.ID != "" {
			t.Errorf("candidate %d should leave ID to the normalizer, got %q", i, c.ID)
		}
		if c.Category != event.CategoryCombat || c.SportTag != event.SportJJB || c.Federation != "IBJJF" {
			t.Errorf("candidate %d classification = %s/%s/%s", i, c.Category, c.SportTag, c.Federation)
		}
	}
}

func TestCards_GeoFilter(t *testing.T) {
	pageURL := "https://ibjjf.com/events/calendar"
	env := testEnv("ibjjf", pageURL)
	env.Metrics = logger.NewMetrics()

	got, err := ibjjfCards(true).Extract(context.Background(), mustDoc(t, ibjjfCalendar, pageURL), env)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "European Open" {
		t.Fatalf("geo filter kept %+v, want only European Open", got)
	}
	if n := env.Metrics.Counter("source.ibjjf.rejected_geo"); n != 1 {
		t.Errorf("rejected_geo = %d, want 1", n)
	}
}

func TestCards_CustomSelectors(t *testing.T) {
	html := `<article class="comp"><h4 class="t">Paris Open BJJ</h4><time class="d">12/04/2025</time><p class="l">Paris, France</p></article>`
	c := &Cards{
		CardSelector:     "article.comp",
		RowSelector:      ".none",
		NameSelector:     ".t",
		DateSelector:     ".d",
		LocationSelector: ".l",
		Category:         event.CategoryCombat,
		SportTag:         event.SportJJB,
	}

	got, err := c.Extract(context.Background(), mustDoc(t, html, "https://cfjjb.com/"), testEnv("cfjjb", "https://cfjjb.com/"))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].City != "Paris" || got[0].Country != "France" || got[0].DateText != "12/04/2025" {
		t.Errorf("candidate = %+v", got[0])
	}
}
