package parse

import (
	"strings"
	"unicode"

	"github.com/pfrederiksen/sports-events/internal/lexicon"
)

var stoplist = func() map[string]bool {
	m := make(map[string]bool, len(lexicon.TitleStoplist))
	for _, w := range lexicon.TitleStoplist {
		m[strings.ToLower(w)] = true
	}
	return m
}()

// CityFromTitle derives a city from an event title such as
// "Myprotein HYROX Manchester" by dropping sponsor and brand tokens and taking
// the trailing word, or the trailing two words for known two-word cities.
func CityFromTitle(title string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(title)
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return lexicon.Unknown
	}

	lowered := " " + strings.ToLower(strings.Join(words, " ")) + " "
	for _, city := range lexicon.TwoWordCities {
		if strings.Contains(lowered, " "+strings.ToLower(city)+" ") {
			return city
		}
	}

	var cityWords []string
	for _, w := range words {
		if len([]rune(w)) > 1 && !stoplist[strings.ToLower(w)] {
			cityWords = append(cityWords, w)
		}
	}
	if len(cityWords) == 0 {
		return TitleCase(words[len(words)-1])
	}

	city := cityWords[len(cityWords)-1]
	if len(cityWords) >= 2 {
		prev := strings.ToLower(cityWords[len(cityWords)-2])
		for _, p := range lexicon.TwoWordCityPrefixes {
			if prev == p {
				city = cityWords[len(cityWords)-2] + " " + city
				break
			}
		}
	}
	return TitleCase(city)
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Slugify lower-cases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
