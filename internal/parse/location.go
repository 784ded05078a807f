package parse

import (
	"regexp"
	"strings"

	"github.com/pfrederiksen/sports-events/internal/lexicon"
)

// cityCountryPattern finds "City, Country" pairs of capitalized words in noisy text.
var cityCountryPattern = regexp.MustCompile(`([A-ZÀ-Ü][a-zà-ü\-]+(?:\s+[A-ZÀ-Ü][a-zà-ü\-]+)*),\s*([A-ZÀ-Ü][a-zà-ü\-]+(?:\s+[A-ZÀ-Ü][a-zà-ü]+)*)`)

// usStatePattern matches a two-letter state or province code.
var usStatePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// segments splits a location on commas, dropping empty parts.
func segments(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExtractCityCountry splits a "City, Country" fragment. With two or more
// comma-separated segments the first is the city and the last is the country,
// normalized through the lexicon alias table. A single segment is returned as
// the city with an Unknown country.
func ExtractCityCountry(s string) (city, country string) {
	segs := segments(s)
	switch len(segs) {
	case 0:
		return lexicon.Unknown, lexicon.Unknown
	case 1:
		return segs[0], lexicon.Unknown
	}
	country = lexicon.NormalizeCountry(segs[len(segs)-1])
	if country == "" {
		country = lexicon.Unknown
	}
	return segs[0], country
}

// ExtractVenueCityCountry handles "Venue, City" and "Venue, City, Country"
// strings as published by federation calendars, where the first segment is a
// venue rather than a city.
func ExtractVenueCityCountry(s string) (city, country string) {
	segs := segments(s)
	if len(segs) < 2 {
		return ExtractCityCountry(s)
	}

	last := segs[len(segs)-1]
	if lexicon.IsCountry(last) {
		city = segs[len(segs)-2]
		if len(segs) >= 3 && usStatePattern.MatchString(city) {
			city = segs[len(segs)-3]
		}
		return city, lexicon.NormalizeCountry(last)
	}

	if c, ok := lexicon.CountryForCity(last); ok {
		return last, c
	}
	return last, lexicon.Unknown
}

// FindCityCountry searches free text for the first "City, Country" pair and
// returns it verbatim, or "" when none is present.
func FindCityCountry(text string) string {
	m := cityCountryPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + ", " + m[2]
}
