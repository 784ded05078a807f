package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/sports-events/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate    SortOrder = "date"
	SortByCountry SortOrder = "country"
	SortByTitle   SortOrder = "title"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortByDate, SortByCountry, SortByTitle:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'date', 'country' or 'title')", s)
}

// sortEvents sorts a slice of events based on the specified sort order
func sortEvents(events []*event.Event, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		event.SortByDate(events)
	case SortByCountry:
		sort.SliceStable(events, func(i, j int) bool {
			ci, cj := events[i].Location.Country, events[j].Location.Country
			if ci != cj {
				return ci < cj
			}
			// If countries are equal, sort by date
			return events[i].DateStart.Before(events[j].DateStart)
		})
	case SortByTitle:
		event.SortByTitle(events)
	}
}
