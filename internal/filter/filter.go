// Package filter selects events from a catalogue.
//
// Criteria combine with AND; values within one criterion combine with OR:
//   - Date range (from/to, inclusive)
//   - Sport tags and categories (exact)
//   - Countries (case-insensitive exact)
//   - Cities and title words (case-insensitive substring)
//   - Federations (case-insensitive exact)
//   - Weekends only (Saturday/Sunday start)
//   - Upcoming only, or within N days of Now
//
// Example usage:
//
//	// Upcoming grappling events in France this spring
//	f := filter.NewFilter()
//	f.Sports = []event.SportTag{event.SportGrappling, event.SportJJB}
//	f.Countries = []string{"France"}
//	f.DateFrom, f.DateTo, _ = filter.ParseDateRange("March 1 - May 31")
//
//	filtered := f.Apply(events)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/sports-events/internal/event"
)

// Filter represents event filtering criteria
type Filter struct {
	// Date range filtering
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	Sports      []event.SportTag `json:"sports,omitempty"`
	Categories  []event.Category `json:"categories,omitempty"`
	Countries   []string         `json:"countries,omitempty"`
	Federations []string         `json:"federations,omitempty"`

	// Case-insensitive substring matches
	Cities []string `json:"cities,omitempty"`
	Titles []string `json:"titles,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`

	// HidePast and DaysAhead are evaluated against Now.
	HidePast  bool      `json:"hide_past,omitempty"`
	DaysAhead int       `json:"days_ahead,omitempty"`
	Now       time.Time `json:"-"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all events until criteria are added.
func NewFilter() *Filter {
	return &Filter{}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Sports) == 0 &&
		len(f.Categories) == 0 &&
		len(f.Countries) == 0 &&
		len(f.Federations) == 0 &&
		len(f.Cities) == 0 &&
		len(f.Titles) == 0 &&
		!f.WeekendsOnly &&
		!f.HidePast &&
		f.DaysAhead <= 0
}

// Matches checks if an event matches all active filter criteria.
// An empty filter matches all events.
func (f *Filter) Matches(evt *event.Event) bool {
	if f.IsEmpty() {
		return true
	}

	date := evt.DateStart.Time()

	// Check date range. DateTo is inclusive of the whole day.
	if f.DateFrom != nil && date.Before(truncateDay(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && date.After(truncateDay(*f.DateTo)) {
		return false
	}

	if f.HidePast && evt.DateStart.IsPast(f.now()) {
		return false
	}
	if !evt.DateStart.IsWithinDays(f.now(), f.DaysAhead) {
		return false
	}

	if f.WeekendsOnly {
		weekday := date.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	if len(f.Sports) > 0 && !containsValue(f.Sports, evt.SportTag) {
		return false
	}
	if len(f.Categories) > 0 && !containsValue(f.Categories, evt.Category) {
		return false
	}
	if len(f.Countries) > 0 && !equalsAny(evt.Location.Country, f.Countries) {
		return false
	}
	if len(f.Federations) > 0 && !equalsAny(evt.FederationName(), f.Federations) {
		return false
	}
	if len(f.Cities) > 0 && !containsAny(evt.Location.City, f.Cities) {
		return false
	}
	if len(f.Titles) > 0 && !containsAny(evt.Title, f.Titles) {
		return false
	}

	return true
}

// Apply returns the matching events in their original order. An empty filter
// returns the input unchanged.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}

	filtered := make([]*event.Event, 0)
	for _, evt := range events {
		if f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: Jan 2, 2026 | To: Jan 15, 2026 | Sports: jjb, grappling | Weekends only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}
	if len(f.Sports) > 0 {
		parts = append(parts, fmt.Sprintf("Sports: %s", joinValues(f.Sports)))
	}
	if len(f.Categories) > 0 {
		parts = append(parts, fmt.Sprintf("Categories: %s", joinValues(f.Categories)))
	}
	if len(f.Countries) > 0 {
		parts = append(parts, fmt.Sprintf("Countries: %s", strings.Join(f.Countries, ", ")))
	}
	if len(f.Federations) > 0 {
		parts = append(parts, fmt.Sprintf("Federations: %s", strings.Join(f.Federations, ", ")))
	}
	if len(f.Cities) > 0 {
		parts = append(parts, fmt.Sprintf("Cities: %s", strings.Join(f.Cities, ", ")))
	}
	if len(f.Titles) > 0 {
		parts = append(parts, fmt.Sprintf("Titles: %s", strings.Join(f.Titles, ", ")))
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}
	if f.HidePast {
		parts = append(parts, "Upcoming only")
	}
	if f.DaysAhead > 0 {
		parts = append(parts, fmt.Sprintf("Within %d days", f.DaysAhead))
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		WeekendsOnly: f.WeekendsOnly,
		HidePast:     f.HidePast,
		DaysAhead:    f.DaysAhead,
		Now:          f.Now,
		Sports:       append([]event.SportTag(nil), f.Sports...),
		Categories:   append([]event.Category(nil), f.Categories...),
		Countries:    append([]string(nil), f.Countries...),
		Federations:  append([]string(nil), f.Federations...),
		Cities:       append([]string(nil), f.Cities...),
		Titles:       append([]string(nil), f.Titles...),
	}
	if f.DateFrom != nil {
		df := *f.DateFrom
		clone.DateFrom = &df
	}
	if f.DateTo != nil {
		dt := *f.DateTo
		clone.DateTo = &dt
	}
	return clone
}

func (f *Filter) now() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func containsValue[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func equalsAny(s string, values []string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}

func containsAny(s string, values []string) bool {
	lower := strings.ToLower(s)
	for _, v := range values {
		if strings.Contains(lower, strings.ToLower(v)) {
			return true
		}
	}
	return false
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
