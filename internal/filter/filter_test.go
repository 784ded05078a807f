package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/sports-events/internal/event"
)

func mkEvent(t *testing.T, id, title, date, city, country string, cat event.Category, sport event.SportTag, fed string) *event.Event {
	t.Helper()
	d, err := event.ParseISODate(date)
	if err != nil {
		t.Fatalf("ParseISODate(%q): %v", date, err)
	}
	evt := &event.Event{
		ID:               id,
		Title:            title,
		DateStart:        d,
		Location:         event.Location{City: city, Country: country},
		Category:         cat,
		SportTag:         sport,
		RegistrationLink: "https://example.com/" + id,
	}
	if fed != "" {
		evt.Federation = &fed
	}
	return evt
}

// catalogue starts on a Saturday, a Wednesday, two Sundays and a Friday.
func catalogue(t *testing.T) []*event.Event {
	return []*event.Event{
		mkEvent(t, "1", "IBJJF Paris Open", "2025-03-15", "Paris", "France", event.CategoryCombat, event.SportJJB, "IBJJF"),
		mkEvent(t, "2", "ADCC Barcelona Open", "2025-03-19", "Barcelona", "Spain", event.CategoryCombat, event.SportGrappling, "ADCC"),
		mkEvent(t, "3", "HYROX Lyon", "2025-04-06", "Lyon", "France", event.CategoryEndurance, event.SportHyrox, "HYROX"),
		mkEvent(t, "4", "Marathon de Paris", "2025-04-13", "Paris", "France", event.CategoryEndurance, event.SportMarathon, ""),
		mkEvent(t, "5", "Rio Summer Open", "2025-01-10", "Rio de Janeiro", "Brazil", event.CategoryCombat, event.SportJJB, "IBJJF"),
	}
}

func ids(events []*event.Event) string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return strings.Join(out, ",")
}

func TestFilter_Apply(t *testing.T) {
	date := func(s string) *time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return &d
	}
	now := time.Date(2025, 3, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{"empty filter", NewFilter(), "1,2,3,4,5"},
		{"sport", &Filter{Sports: []event.SportTag{event.SportJJB}}, "1,5"},
		{"sports any of", &Filter{Sports: []event.SportTag{event.SportJJB, event.SportGrappling}}, "1,2,5"},
		{"category", &Filter{Categories: []event.Category{event.CategoryEndurance}}, "3,4"},
		{"country case-insensitive", &Filter{Countries: []string{"france"}}, "1,3,4"},
		{"city substring", &Filter{Cities: []string{"rio"}}, "5"},
		{"title substring", &Filter{Titles: []string{"open"}}, "1,2,5"},
		{"federation", &Filter{Federations: []string{"ibjjf"}}, "1,5"},
		{"date from", &Filter{DateFrom: date("2025-03-19")}, "2,3,4"},
		{"date to inclusive", &Filter{DateTo: date("2025-03-19")}, "1,2,5"},
		{"date to with time of day", &Filter{DateTo: func() *time.Time { d := time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC); return &d }()}, "1,5"},
		{"weekends only", &Filter{WeekendsOnly: true}, "1,3,4"},
		{"upcoming only", &Filter{HidePast: true, Now: now}, "2,3,4"},
		{"within days", &Filter{DaysAhead: 20, Now: now}, "2,3"},
		{"combined", &Filter{Countries: []string{"France"}, Categories: []event.Category{event.CategoryEndurance}, Cities: []string{"paris"}}, "4"},
		{"nothing matches", &Filter{Countries: []string{"Japan"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(tt.filter.Apply(catalogue(t))); got != tt.want {
				t.Errorf("Apply() = [%s], want [%s]", got, tt.want)
			}
		})
	}
}

func TestFilter_IsEmpty(t *testing.T) {
	if !NewFilter().IsEmpty() {
		t.Error("NewFilter() should be empty")
	}
	if (&Filter{Titles: []string{"x"}}).IsEmpty() {
		t.Error("filter with titles should not be empty")
	}
	if (&Filter{HidePast: true}).IsEmpty() {
		t.Error("filter hiding past events should not be empty")
	}
}

func TestFilter_String(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f := &Filter{
		DateFrom:     &from,
		Sports:       []event.SportTag{event.SportJJB, event.SportGrappling},
		Countries:    []string{"France"},
		WeekendsOnly: true,
	}

	want := "From: Mar 1, 2025 | Sports: jjb, grappling | Countries: France | Weekends only"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := NewFilter().String(); got != "No active filters" {
		t.Errorf("empty String() = %q", got)
	}
}

func TestFilter_Clone(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f := &Filter{DateFrom: &from, Cities: []string{"Paris"}, Sports: []event.SportTag{event.SportJJB}}

	clone := f.Clone()
	clone.Cities[0] = "Lyon"
	clone.Sports[0] = event.SportHyrox
	*clone.DateFrom = from.AddDate(0, 1, 0)

	if f.Cities[0] != "Paris" || f.Sports[0] != event.SportJJB || !f.DateFrom.Equal(from) {
		t.Errorf("modifying the clone changed the original: %+v", f)
	}
}
