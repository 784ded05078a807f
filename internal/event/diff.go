package event

import (
	"sort"
	"strings"
)

// DiffResult describes how a freshly built catalogue differs from the
// previously written one. It is a report only; catalogues are always rebuilt
// from scratch.
type DiffResult struct {
	Added   []*Event       `json:"added"`
	Removed []*Event       `json:"removed"`
	Changes []*EventChange `json:"changes"`
}

// Empty reports whether the two catalogues were identical by ID and content.
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changes) == 0
}

// EventChange represents a field change on an event present in both catalogues.
type EventChange struct {
	EventID    string `json:"event_id"`
	ChangeType string `json:"change_type"` // "date", "title", "city", "link"
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
}

// Index returns the events keyed by ID. Later duplicates win.
func Index(events []*Event) map[string]*Event {
	m := make(map[string]*Event, len(events))
	for _, evt := range events {
		m[evt.ID] = evt
	}
	return m
}

// Diff compares two catalogues by event ID.
func Diff(previous, current []*Event) *DiffResult {
	result := &DiffResult{
		Added:   make([]*Event, 0),
		Removed: make([]*Event, 0),
		Changes: make([]*EventChange, 0),
	}

	prev := Index(previous)
	curr := Index(current)

	for id, evt := range curr {
		old, exists := prev[id]
		if !exists {
			result.Added = append(result.Added, evt)
			continue
		}
		result.Changes = append(result.Changes, DetectChanges(old, evt)...)
	}
	for id, evt := range prev {
		if _, exists := curr[id]; !exists {
			result.Removed = append(result.Removed, evt)
		}
	}

	SortByDate(result.Added)
	SortByDate(result.Removed)
	sort.Slice(result.Changes, func(i, j int) bool {
		if result.Changes[i].EventID != result.Changes[j].EventID {
			return result.Changes[i].EventID < result.Changes[j].EventID
		}
		return result.Changes[i].ChangeType < result.Changes[j].ChangeType
	})

	return result
}

// DetectChanges compares two versions of the same event.
func DetectChanges(previous, current *Event) []*EventChange {
	var changes []*EventChange
	add := func(kind, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, &EventChange{
				EventID:    current.ID,
				ChangeType: kind,
				OldValue:   oldValue,
				NewValue:   newValue,
			})
		}
	}

	add("date", previous.DateStart.String(), current.DateStart.String())
	add("title", previous.Title, current.Title)
	add("city", previous.Location.City, current.Location.City)
	add("link", previous.RegistrationLink, current.RegistrationLink)

	return changes
}

// SortByDate sorts events ascending by start date. The sort is stable, so
// events on the same day keep their incoming order.
func SortByDate(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].DateStart.Before(events[j].DateStart)
	})
}

// SortByTitle sorts events by case-insensitive title, then by date.
func SortByTitle(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, tj := strings.ToLower(events[i].Title), strings.ToLower(events[j].Title)
		if ti != tj {
			return ti < tj
		}
		return events[i].DateStart.Before(events[j].DateStart)
	})
}
