package lexicon

import "strings"

// Unknown is the sentinel used for any unresolved city or country.
const Unknown = "Unknown"

// International is the country reported for anchor-list events whose URL slug
// names no known city.
const International = "International"

// CitySlug pairs a lowercase URL fragment with the country it implies.
type CitySlug struct {
	Slug    string
	Country string
}

// CitySlugs maps URL slug fragments to countries. Order matters: the first
// fragment found in a URL wins, so longer and more specific slugs come first.
var CitySlugs = []CitySlug{
	{"st-gallen", "Switzerland"},
	{"las-vegas", "United States"},
	{"new-york", "United States"},
	{"hong-kong", "Hong Kong"},
	{"hongkong", "Hong Kong"},
	{"paris", "France"},
	{"toulouse", "France"},
	{"lyon", "France"},
	{"bordeaux", "France"},
	{"marseille", "France"},
	{"nice", "France"},
	{"amsterdam", "Netherlands"},
	{"rotterdam", "Netherlands"},
	{"heerenveen", "Netherlands"},
	{"manchester", "United Kingdom"},
	{"london", "United Kingdom"},
	{"glasgow", "United Kingdom"},
	{"cardiff", "United Kingdom"},
	{"birmingham", "United Kingdom"},
	{"berlin", "Germany"},
	{"cologne", "Germany"},
	{"hamburg", "Germany"},
	{"munich", "Germany"},
	{"vienna", "Austria"},
	{"gallen", "Switzerland"},
	{"zurich", "Switzerland"},
	{"geneva", "Switzerland"},
	{"copenhagen", "Denmark"},
	{"stockholm", "Sweden"},
	{"oslo", "Norway"},
	{"dublin", "Ireland"},
	{"barcelona", "Spain"},
	{"bilbao", "Spain"},
	{"malaga", "Spain"},
	{"madrid", "Spain"},
	{"valencia", "Spain"},
	{"lisboa", "Portugal"},
	{"lisbon", "Portugal"},
	{"porto", "Portugal"},
	{"istanbul", "Turkey"},
	{"warsaw", "Poland"},
	{"katowice", "Poland"},
	{"gdansk", "Poland"},
	{"singapore", "Singapore"},
	{"bangkok", "Thailand"},
	{"taipei", "Taiwan"},
	{"osaka", "Japan"},
	{"tokyo", "Japan"},
	{"auckland", "New Zealand"},
	{"brisbane", "Australia"},
	{"melbourne", "Australia"},
	{"sydney", "Australia"},
	{"perth", "Australia"},
	{"miami", "United States"},
	{"phoenix", "United States"},
	{"vegas", "United States"},
	{"houston", "United States"},
	{"washington", "United States"},
	{"chicago", "United States"},
	{"dallas", "United States"},
	{"anaheim", "United States"},
	{"guadalajara", "Mexico"},
	{"monterrey", "Mexico"},
	{"cancun", "Mexico"},
	{"mexico-city", "Mexico"},
	{"fortaleza", "Brazil"},
	{"rio-de-janeiro", "Brazil"},
	{"sao-paulo", "Brazil"},
	{"turin", "Italy"},
	{"torino", "Italy"},
	{"bologna", "Italy"},
	{"rome", "Italy"},
	{"milan", "Italy"},
	{"mechelen", "Belgium"},
	{"brussels", "Belgium"},
	{"helsinki", "Finland"},
	{"bengaluru", "India"},
	{"bangalore", "India"},
	{"mumbai", "India"},
	{"incheon", "South Korea"},
	{"seoul", "South Korea"},
	{"dubai", "United Arab Emirates"},
	{"abu-dhabi", "United Arab Emirates"},
	{"cape-town", "South Africa"},
	{"johannesburg", "South Africa"},
	{"toronto", "Canada"},
	{"vancouver", "Canada"},
}

// cityCountry indexes CitySlugs by city display name ("las vegas", "paris").
var cityCountry = func() map[string]string {
	m := make(map[string]string, len(CitySlugs))
	for _, cs := range CitySlugs {
		m[strings.ReplaceAll(cs.Slug, "-", " ")] = cs.Country
	}
	return m
}()

// CountryForCity returns the country of a known city name, matched case-insensitively.
func CountryForCity(city string) (string, bool) {
	c, ok := cityCountry[strings.ToLower(strings.TrimSpace(city))]
	return c, ok
}

// CountryForSlug returns the country of the first known city fragment found in
// a URL or slug, or International when none is present.
func CountryForSlug(url string) string {
	lower := strings.ToLower(url)
	for _, cs := range CitySlugs {
		if strings.Contains(lower, cs.Slug) {
			return cs.Country
		}
	}
	return International
}

// countryAliases normalizes abbreviations and local spellings to the display
// name used in the catalogue. Keys are lowercase.
var countryAliases = map[string]string{
	"usa":                      "United States",
	"us":                       "United States",
	"u.s.":                     "United States",
	"u.s.a.":                   "United States",
	"united states of america": "United States",
	"uk":                       "United Kingdom",
	"u.k.":                     "United Kingdom",
	"great britain":            "United Kingdom",
	"gb":                       "United Kingdom",
	"uae":                      "United Arab Emirates",
	"u.a.e.":                   "United Arab Emirates",
	"nl":                       "Netherlands",
	"the netherlands":          "Netherlands",
	"holland":                  "Netherlands",
	"deutschland":              "Germany",
	"españa":                   "Spain",
	"espana":                   "Spain",
	"italia":                   "Italy",
	"brasil":                   "Brazil",
	"schweiz":                  "Switzerland",
	"suisse":                   "Switzerland",
	"belgique":                 "Belgium",
	"polska":                   "Poland",
	"türkiye":                  "Turkey",
	"turkiye":                  "Turkey",
	"korea":                    "South Korea",
	"republic of korea":        "South Korea",
}

// NormalizeCountry maps a country string through the alias table. Unknown
// values pass through trimmed but otherwise unchanged.
func NormalizeCountry(country string) string {
	trimmed := strings.TrimSpace(country)
	if c, ok := countryAliases[strings.ToLower(trimmed)]; ok {
		return c
	}
	return trimmed
}

// knownCountries is the set of canonical country names the lexicon produces.
var knownCountries = func() map[string]bool {
	m := make(map[string]bool)
	for _, cs := range CitySlugs {
		m[strings.ToLower(cs.Country)] = true
	}
	for _, c := range countryAliases {
		m[strings.ToLower(c)] = true
	}
	for _, c := range europeanCountries {
		m[c] = true
	}
	return m
}()

// IsCountry reports whether s is a country name or alias the lexicon knows.
func IsCountry(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if _, ok := countryAliases[lower]; ok {
		return true
	}
	return knownCountries[lower]
}

// TwoWordCities are city names that must not be truncated to their last word.
var TwoWordCities = []string{
	"Las Vegas", "Hong Kong", "New York", "San Francisco", "Los Angeles",
	"Miami Beach", "St Gallen", "Abu Dhabi", "Cape Town",
	"San Diego", "Mexico City",
}

// TwoWordCityPrefixes force a two-word city when they precede the last word.
var TwoWordCityPrefixes = []string{"saint", "st", "san", "new", "los", "las"}

// TitleStoplist holds sponsor, brand and event-type tokens stripped from a title
// before the trailing words are taken as the city. Matching is case-insensitive.
var TitleStoplist = []string{
	"HYROX", "Myprotein", "Smart", "Fit", "Legendz", "Maybelline",
	"well", "come", "Championships", "Championship",
	"EMEA", "APAC", "Youngstars", "Grand", "Palais",
	"BYD", "CENTR", "AirAsia", "Creapure®", "Creapure",
	"ST", "D", "C", "D.C.",
}
