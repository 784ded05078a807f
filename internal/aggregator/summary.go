package aggregator

import "github.com/pfrederiksen/sports-events/internal/event"

// Summary counts a catalogue by category and by sport tag.
type Summary struct {
	Total      int                    `json:"total"`
	ByCategory map[event.Category]int `json:"by_category"`
	BySport    map[event.SportTag]int `json:"by_sport"`
}

// Summarize counts events by category and sport tag.
func Summarize(events []*event.Event) Summary {
	s := Summary{
		Total:      len(events),
		ByCategory: make(map[event.Category]int),
		BySport:    make(map[event.SportTag]int),
	}
	for _, evt := range events {
		s.ByCategory[evt.Category]++
		s.BySport[evt.SportTag]++
	}
	return s
}
