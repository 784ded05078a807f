package config

import (
	"fmt"

	"github.com/pfrederiksen/sports-events/internal/aggregator"
	"github.com/pfrederiksen/sports-events/internal/parse"
	"github.com/pfrederiksen/sports-events/internal/scraper"
)

// AggregatorSources turns the enabled sources into runnable aggregator
// sources.
func (c *Config) AggregatorSources() ([]aggregator.Source, error) {
	var out []aggregator.Source
	for _, s := range c.EnabledSources() {
		ex, err := c.extractor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, aggregator.Source{
			Name:         s.Name,
			URL:          s.URL,
			Render:       s.Render,
			Extractor:    ex,
			DateFallback: parse.Fallback{OffsetDays: s.DateOffsetDays},
		})
	}
	return out, nil
}

func (c *Config) extractor(s Source) (scraper.Extractor, error) {
	switch s.Kind {
	case KindAnchor:
		return &scraper.Anchor{
			HrefMarker:        s.HrefMarker,
			ExcludeClass:      s.ExcludeClass,
			TitlePrefix:       s.TitlePrefix,
			Category:          s.Category,
			SportTag:          s.SportTag,
			Federation:        s.Federation,
			ClassifyRunning:   s.ClassifyRunning,
			ParentFields:      s.ParentFields,
			DefaultOffsetDays: s.DateOffsetDays,
		}, nil
	case KindCards:
		return &scraper.Cards{
			CardSelector:     s.Selectors.Card,
			Exclude:          s.Selectors.Exclude,
			RowSelector:      s.Selectors.Row,
			NameSelector:     s.Selectors.Name,
			DateSelector:     s.Selectors.Date,
			LocationSelector: s.Selectors.Location,
			Category:         s.Category,
			SportTag:         s.SportTag,
			Federation:       s.Federation,
			GeoFilter:        s.GeoFilter,
		}, nil
	case KindPayload:
		return &scraper.Payload{
			Selector:   s.Selectors.Payload,
			EventPath:  s.EventPath,
			HrefMarker: s.HrefMarker,
			Category:   s.Category,
		}, nil
	case KindStrict:
		return &scraper.Strict{
			GeoFilter: s.GeoFilter,
			PaceEvery: c.Policies.PaceEvery,
			PaceDelay: c.Policies.PaceDelay,
			Category:  s.Category,
		}, nil
	}
	return nil, fmt.Errorf("%w: source %q has unknown kind %q", ErrInvalid, s.Name, s.Kind)
}
