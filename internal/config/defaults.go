package config

import "github.com/pfrederiksen/sports-events/internal/event"

// DefaultSources returns the production sources.
func DefaultSources(p Policies) []Source {
	disabled := false
	return []Source{
		{
			Name:           "hyrox",
			Kind:           KindAnchor,
			URL:            "https://hyroxfrance.com/fr/trouve-ta-course/",
			HrefMarker:     "/event/",
			ExcludeClass:   "w-btn",
			TitlePrefix:    "HYROX",
			Category:       event.CategoryEndurance,
			SportTag:       event.SportHyrox,
			Federation:     "HYROX",
			DateOffsetDays: p.DefaultDateOffsetDays,
		},
		{
			Name:            "running",
			Kind:            KindAnchor,
			URL:             "https://www.ahotu.com/calendar",
			Render:          true,
			HrefMarker:      "/event/",
			Category:        event.CategoryEndurance,
			SportTag:        event.SportRunning,
			ClassifyRunning: true,
			ParentFields:    true,
		},
		{
			Name:       "ibjjf",
			Kind:       KindCards,
			URL:        "https://ibjjf.com/events/calendar",
			Render:     true,
			Category:   event.CategoryCombat,
			SportTag:   event.SportJJB,
			Federation: "IBJJF",
		},
		{
			Name:      "smoothcomp",
			Kind:      KindPayload,
			URL:       "https://smoothcomp.com/en/events/upcoming",
			Render:    true,
			Category:  event.CategoryCombat,
			EventPath: "/en/event",
		},
		{
			Name:      "smoothcomp-europe",
			Kind:      KindStrict,
			URL:       "https://smoothcomp.com/en/events/upcoming",
			Enabled:   &disabled,
			Category:  event.CategoryCombat,
			GeoFilter: true,
		},
	}
}
