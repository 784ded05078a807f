package scraper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/sports-events/internal/lexicon"
	"github.com/pfrederiksen/sports-events/internal/parse"
)

const jsonLDSelector = `script[type="application/ld+json"]`

// jsonLDObjects decodes every JSON-LD block in the document and flattens
// arrays and @graph containers into a list of objects. Malformed blocks are
// skipped.
func jsonLDObjects(doc *goquery.Document) []map[string]interface{} {
	var out []map[string]interface{}
	doc.Find(jsonLDSelector).Each(func(_ int, script *goquery.Selection) {
		raw := strings.TrimSpace(script.Text())
		if raw == "" {
			return
		}
		var payload interface{}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return
		}
		out = append(out, collectJSONObjects(payload)...)
	})
	return out
}

func collectJSONObjects(payload interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0)
	switch v := payload.(type) {
	case map[string]interface{}:
		out = append(out, v)
		if graph, ok := v["@graph"]; ok {
			out = append(out, collectJSONObjects(graph)...)
		}
	case []interface{}:
		for _, item := range v {
			out = append(out, collectJSONObjects(item)...)
		}
	}
	return out
}

// hasType reports whether the object's @type is, or includes, want.
func hasType(m map[string]interface{}, want string) bool {
	switch v := m["@type"].(type) {
	case string:
		return strings.EqualFold(strings.TrimSpace(v), want)
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.EqualFold(strings.TrimSpace(s), want) {
				return true
			}
		}
	}
	return false
}

// isEventType accepts Event and its schema.org subtypes such as SportsEvent.
func isEventType(m map[string]interface{}) bool {
	if hasType(m, "Event") || hasType(m, "SportsEvent") {
		return true
	}
	if s, ok := m["@type"].(string); ok {
		return strings.HasSuffix(strings.ToLower(s), "event")
	}
	return false
}

// itemListURLs returns the URLs listed by ItemList annotations in document
// order, without duplicates.
func itemListURLs(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	for _, obj := range jsonLDObjects(doc) {
		if !hasType(obj, "ItemList") {
			continue
		}
		elements, _ := obj["itemListElement"].([]interface{})
		for _, el := range elements {
			switch v := el.(type) {
			case string:
				add(v)
			case map[string]interface{}:
				if u := stringField(v, "url"); u != "" {
					add(u)
				} else if item, ok := v["item"].(map[string]interface{}); ok {
					add(stringField(item, "url"))
					add(stringField(item, "@id"))
				} else if s, ok := v["item"].(string); ok {
					add(s)
				}
			}
		}
	}
	return urls
}

// jsonLDEvent is the subset of a schema.org Event annotation we use.
type jsonLDEvent struct {
	Name      string
	StartDate string
	City      string
	Country   string
	Address   string
	Image     string
}

// firstJSONLDEvent returns the first Event annotation in the document.
func firstJSONLDEvent(doc *goquery.Document) (jsonLDEvent, bool) {
	for _, obj := range jsonLDObjects(doc) {
		if !isEventType(obj) {
			continue
		}
		ev := jsonLDEvent{
			Name:      stringField(obj, "name"),
			StartDate: stringField(obj, "startDate"),
			Image:     imageField(obj["image"]),
		}
		ev.City, ev.Country, ev.Address = jsonLDLocation(obj["location"])
		return ev, true
	}
	return jsonLDEvent{}, false
}

// jsonLDLocation reads a Place or a plain string. Structured PostalAddress
// fields are preferred; otherwise the text goes through the location parser.
func jsonLDLocation(value interface{}) (city, country, full string) {
	switch v := value.(type) {
	case string:
		full = cleanText(v)
	case []interface{}:
		if len(v) > 0 {
			return jsonLDLocation(v[0])
		}
	case map[string]interface{}:
		name := stringField(v, "name")
		switch addr := v["address"].(type) {
		case string:
			full = joinNonEmpty(name, addr)
		case map[string]interface{}:
			city = stringField(addr, "addressLocality")
			country = countryField(addr["addressCountry"])
			full = joinNonEmpty(name, stringField(addr, "streetAddress"), city, stringField(addr, "addressRegion"), country)
		default:
			full = name
		}
	}

	if city != "" {
		if country == "" {
			if c, ok := lexicon.CountryForCity(city); ok {
				country = c
			} else {
				country = lexicon.Unknown
			}
		} else {
			country = lexicon.NormalizeCountry(country)
		}
		return city, country, full
	}
	if full == "" {
		return "", "", ""
	}
	city, country = parse.ExtractVenueCityCountry(full)
	return city, country, full
}

func countryField(v interface{}) string {
	switch c := v.(type) {
	case string:
		return strings.TrimSpace(c)
	case map[string]interface{}:
		return stringField(c, "name")
	}
	return ""
}

func imageField(v interface{}) string {
	switch img := v.(type) {
	case string:
		return strings.TrimSpace(img)
	case []interface{}:
		if len(img) > 0 {
			return imageField(img[0])
		}
	case map[string]interface{}:
		return stringField(img, "url")
	}
	return ""
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = cleanText(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// stringField returns m[key] as a trimmed string. Numbers are formatted
// without a fractional part when integral.
func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case json.Number:
		return v.String()
	}
	return ""
}
