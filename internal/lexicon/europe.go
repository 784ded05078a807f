package lexicon

import (
	"regexp"
	"strings"
)

// europeanCountries holds lowercase country names and common local or
// multilingual synonyms.
var europeanCountries = []string{
	"france", "germany", "allemagne", "deutschland", "spain", "espagne", "españa",
	"italy", "italie", "italia", "portugal", "belgium", "belgique", "belgië",
	"netherlands", "pays-bas", "nederland", "holland", "luxembourg",
	"switzerland", "suisse", "schweiz", "austria", "autriche", "österreich",
	"united kingdom", "royaume-uni", "england", "scotland", "wales",
	"northern ireland", "ireland", "irlande", "denmark", "danemark", "sweden",
	"suède", "norway", "norvège", "finland", "finlande", "iceland", "poland",
	"pologne", "polska", "czech republic", "czechia", "république tchèque",
	"slovakia", "hungary", "hongrie", "romania", "roumanie", "bulgaria",
	"greece", "grèce", "croatia", "croatie", "slovenia", "serbia",
	"bosnia", "montenegro", "albania", "north macedonia", "estonia", "latvia",
	"lithuania", "ukraine", "moldova", "malta", "cyprus", "monaco", "andorra",
	"liechtenstein", "san marino",
}

// europeanCities holds lowercase names of major European cities.
var europeanCities = []string{
	"paris", "lyon", "marseille", "toulouse", "bordeaux", "nice", "nantes",
	"lille", "strasbourg", "montpellier", "london", "manchester", "birmingham",
	"glasgow", "edinburgh", "cardiff", "dublin", "berlin", "munich", "münchen",
	"hamburg", "cologne", "köln", "frankfurt", "düsseldorf", "stuttgart",
	"madrid", "barcelona", "valencia", "seville", "sevilla", "malaga", "málaga",
	"bilbao", "lisbon", "lisboa", "porto", "rome", "roma", "milan", "milano",
	"turin", "torino", "bologna", "naples", "napoli", "florence", "firenze",
	"amsterdam", "rotterdam", "utrecht", "eindhoven", "brussels", "bruxelles",
	"antwerp", "anvers", "ghent", "gent", "luxembourg", "geneva", "genève",
	"zurich", "zürich", "basel", "bern", "lausanne", "vienna", "wien",
	"salzburg", "copenhagen", "stockholm", "gothenburg", "oslo", "helsinki",
	"warsaw", "warszawa", "krakow", "kraków", "gdansk", "wroclaw", "prague",
	"praha", "budapest", "bucharest", "sofia", "athens", "zagreb", "ljubljana",
	"belgrade", "tallinn", "riga", "vilnius", "kyiv", "kiev", "valletta",
	"reykjavik",
}

// nonEuropeanPlaces holds lowercase places outside Europe whose names
// contain a European entry, plus the countries and cities most often seen
// next to them in listings.
var nonEuropeanPlaces = []string{
	"porto alegre", "porto velho", "porto seguro", "new south wales",
	"san bernardino", "new england", "nova scotia", "new mexico",
	"rio de janeiro", "são paulo", "sao paulo", "belo horizonte", "curitiba",
	"brazil", "brasil", "argentina", "buenos aires", "chile", "peru", "colombia",
	"mexico", "méxico", "usa", "united states", "canada", "australia", "sydney",
	"new zealand", "japan", "tokyo", "china", "korea", "india", "thailand",
	"philippines", "indonesia", "singapore", "uae", "dubai", "abu dhabi",
	"south africa",
}

var (
	europePattern    = wordPattern(europeanCountries, europeanCities)
	nonEuropePattern = wordPattern(nonEuropeanPlaces)
)

// wordPattern matches any entry as a whole word or phrase. Letters outside
// ASCII count as word characters.
func wordPattern(tables ...[]string) *regexp.Regexp {
	var alts []string
	for _, table := range tables {
		for _, entry := range table {
			alts = append(alts, regexp.QuoteMeta(entry))
		}
	}
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:` + strings.Join(alts, "|") + `)(?:$|[^\p{L}\p{N}])`)
}

// InEurope reports whether the text names a European country, synonym or
// major city from the gazetteer as a whole word.
func InEurope(text string) bool {
	return europePattern.MatchString(strings.ToLower(text))
}

// OutsideEurope reports whether the text names a known place outside Europe,
// including places such as Porto Alegre or New South Wales that embed a
// European name.
func OutsideEurope(text string) bool {
	return nonEuropePattern.MatchString(strings.ToLower(text))
}
