package scraper

import (
	"context"
	"testing"

	"github.com/pfrederiksen/sports-events/internal/event"
)

const hyroxListing = `<html><body><div class="grid">
  <div class="col"><div class="card">
    <img src="/img/paris.jpg">
    <h2 class="post_title"><a href="/fr/event/hyrox-paris-grand-palais/">HYROX Paris Grand Palais</a></h2>
    <a class="w-btn us-btn" href="/fr/event/hyrox-paris-grand-palais/">Réserver</a>
  </div></div>
  <div class="col"><div class="card">
    <h2><a href="https://hyroxfrance.com/fr/event/myprotein-hyrox-manchester/">Myprotein HYROX Manchester</a></h2>
  </div></div>
  <div class="col"><div class="card"><a href="/fr/event/hyrox-paris-grand-palais/">HYROX Paris Grand Palais</a></div></div>
  <div class="col"><div class="card"><a href="/fr/event/tiny/">ab</a></div></div>
  <div class="col"><div class="card"><a href="/fr/blog/hyrox-news/">Latest HYROX news</a></div></div>
  <div class="col"><div class="card"><h2><a href="/fr/event/nice/">Nice</a></h2></div></div>
</div></body></html>`

func TestAnchor_Hyrox(t *testing.T) {
	a := &Anchor{
		HrefMarker:        "/event/",
		ExcludeClass:      "w-btn",
		TitlePrefix:       "HYROX",
		Category:          event.CategoryEndurance,
		SportTag:          event.SportHyrox,
		Federation:        "HYROX",
		DefaultOffsetDays: 90,
	}
	pageURL := "https://hyroxfrance.com/fr/trouve-ta-course/"
	got, err := a.Extract(context.Background(), mustDoc(t, hyroxListing, pageURL), testEnv("hyrox", pageURL))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	want := []struct {
		title, city, country, link, image string
	}{
		{"HYROX Paris Grand Palais", "Paris", "France", "https://hyroxfrance.com/fr/event/hyrox-paris-grand-palais/", "https://hyroxfrance.com/img/paris.jpg"},
		{"Myprotein HYROX Manchester", "Manchester", "United Kingdom", "https://hyroxfrance.com/fr/event/myprotein-hyrox-manchester/", ""},
		{"HYROX Nice", "Nice", "France", "https://hyroxfrance.com/fr/event/nice/", ""},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d: %+v", len(got), len(want), got)
	}

	for i, w := range want {
		c := got[i]
		if c.Title != w.title || c.City != w.city || c.Country != w.country || c.Link != w.link || c.Image != w.image {
			t.Errorf("candidate %d = %+v, want %+v", i, c, w)
		}
		if c.FullAddress != w.city+", "+w.country {
			t.Errorf("candidate %d FullAddress = %q", i, c.FullAddress)
		}
		if c.Date == nil || c.Date.Format("2006-01-02") != "2024-09-13" {
			t.Errorf("candidate %d Date = %v, want 2024-09-13", i, c.Date)
		}
		if c.ID != event.GenerateID("hyrox", w.link) {
			t.Errorf("candidate %d ID = %q, want hash of link", i, c.ID)
		}
		if c.SportTag != event.SportHyrox || c.Federation != "HYROX" {
			t.Errorf("candidate %d classification = %s/%s", i, c.SportTag, c.Federation)
		}
	}
}

const runningListing = `<html><body><ul>
  <li class="race-card">
    <a href="/event/marathon-de-paris">See race</a>
    <h3>Marathon de Paris</h3>
    <span class="race-date">06 Apr 2025</span>
    <span class="race-location">Paris, France</span>
    <img data-src="/img/mdp.jpg">
  </li>
  <li><a href="https://www.ahotu.com/event/lyon-urban-trail">Lyon Urban Trail, France</a></li>
  <li><a href="/event/lyon-urban-trail">Lyon Urban Trail, France</a></li>
  <li class="race-card">
    <a href="/event/berlin-half">Berlin Half Marathon</a>
    <div class="when-date">6 April 2025</div>
  </li>
</ul></body></html>`

func TestAnchor_Running(t *testing.T) {
	a := &Anchor{
		HrefMarker:      "/event/",
		Category:        event.CategoryEndurance,
		SportTag:        event.SportRunning,
		ClassifyRunning: true,
		ParentFields:    true,
	}
	pageURL := "https://www.ahotu.com/calendar"
	got, err := a.Extract(context.Background(), mustDoc(t, runningListing, pageURL), testEnv("running", pageURL))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d candidates, want 4 (raw hrefs differ): %+v", len(got), got)
	}

	mdp := got[0]
	if mdp.Title != "Marathon de Paris" || mdp.SportTag != event.SportMarathon {
		t.Errorf("heading title/tag = %q/%s", mdp.Title, mdp.SportTag)
	}
	if mdp.DateText != "06 Apr 2025" || mdp.Date != nil {
		t.Errorf("DateText = %q, Date = %v", mdp.DateText, mdp.Date)
	}
	if mdp.City != "Paris" || mdp.Country != "France" {
		t.Errorf("location = %s/%s", mdp.City, mdp.Country)
	}
	if mdp.Image != "https://www.ahotu.com/img/mdp.jpg" {
		t.Errorf("Image = %q", mdp.Image)
	}
	if mdp.Federation != "" {
		t.Errorf("Federation = %q, want none", mdp.Federation)
	}

	trail := got[1]
	if trail.Title != "Lyon Urban Trail" || trail.SportTag != event.SportTrail || trail.Country != "France" {
		t.Errorf("text-derived candidate = %+v", trail)
	}

	half := got[3]
	if half.SportTag != event.SportRunning || half.DateText != "6 April 2025" {
		t.Errorf("half marathon = %+v", half)
	}
	if half.City != "" || half.Country != "" {
		t.Errorf("location should be left to the normalizer, got %s/%s", half.City, half.Country)
	}
}

func TestAnchor_DedupAfterAcceptedLink(t *testing.T) {
	html := `<div><a href="/event/lyon/"><img src="/lyon.jpg"></a></div>
<div><a href="/event/lyon/">HYROX Lyon</a></div>
<div><a href="/event/lyon/">HYROX Lyon again</a></div>`
	pageURL := "https://example.com/events/"
	a := &Anchor{HrefMarker: "/event/", Category: event.CategoryEndurance, SportTag: event.SportHyrox}

	got, err := a.Extract(context.Background(), mustDoc(t, html, pageURL), testEnv("hyrox", pageURL))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if got[0].Title != "HYROX Lyon" {
		t.Errorf("Title = %q, want the first titled link", got[0].Title)
	}
}

func TestAnchor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &Anchor{Category: event.CategoryEndurance, SportTag: event.SportHyrox}
	_, err := a.Extract(ctx, mustDoc(t, hyroxListing, "https://hyroxfrance.com/"), testEnv("hyrox", "https://hyroxfrance.com/"))
	if err == nil {
		t.Error("Extract should report the context error")
	}
}

func TestTitleFromText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Corrida de Noël", "Corrida de Noël"},
		{"Marathon de ParisRisParis, France06 Apr, 2025", "Marathon de ParisRisParis"},
		{"Trail des Cimes 42 km (Sat) Annecy, France", "Trail des Cimes"},
		{"Night Run (Fri), Lyon", "Night Run"},
		{
			"A very long running festival name that keeps going and going Bordeaux, France",
			"A very long running festival name that keeps going and going",
		},
	}

	for _, tt := range tests {
		if got := titleFromText(tt.text); got != tt.want {
			t.Errorf("titleFromText(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
