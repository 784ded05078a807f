package classify

import (
	"strings"
	"unicode"

	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/lexicon"
)

// Reasons reported on a Decision.
const (
	ReasonRejectedKeyword = "rejected_keyword"
	ReasonNoKeyword       = "no_accepted_keyword"
	ReasonAccepted        = "accepted"
)

// Decision is the outcome of strict classification.
type Decision struct {
	Accepted bool
	SportTag event.SportTag
	Keyword  string // keyword that decided the outcome, if any
	Reason   string
}

// Strict applies the reject-first, accept-second, default-reject policy.
//
// A rejected keyword discards the title even when an accepted keyword is also
// present. Among accepted titles, grappling keywords win over BJJ keywords.
func Strict(title string) Decision {
	lower := strings.ToLower(title)

	if kw, ok := firstMatch(lower, lexicon.RejectedKeywords); ok {
		return Decision{Keyword: kw, Reason: ReasonRejectedKeyword}
	}
	if kw, ok := firstMatch(lower, lexicon.GrapplingKeywords); ok {
		return Decision{Accepted: true, SportTag: event.SportGrappling, Keyword: kw, Reason: ReasonAccepted}
	}
	if kw, ok := firstMatch(lower, lexicon.JJBKeywords); ok {
		return Decision{Accepted: true, SportTag: event.SportJJB, Keyword: kw, Reason: ReasonAccepted}
	}
	return Decision{Reason: ReasonNoKeyword}
}

// Combat picks grappling or jjb for a title from a source already known to
// list grappling events. Titles without a grappling keyword default to jjb.
func Combat(title string) event.SportTag {
	if _, ok := firstMatch(strings.ToLower(title), lexicon.GrapplingKeywords); ok {
		return event.SportGrappling
	}
	return event.SportJJB
}

// Running sub-classifies a race title as trail, marathon or running.
func Running(title string) event.SportTag {
	lower := strings.ToLower(title)

	if _, ok := firstMatch(lower, lexicon.TrailKeywords); ok {
		return event.SportTrail
	}
	if _, ok := firstMatch(lower, lexicon.MarathonKeywords); ok {
		if _, half := firstMatch(lower, lexicon.HalfKeywords); !half {
			return event.SportMarathon
		}
	}
	return event.SportRunning
}

// Federation returns the first federation acronym from lexicon.Federations
// found as a whole token in the title, or "" when none is present.
func Federation(title string) string {
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToUpper(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		tokens[tok] = true
	}
	for _, fed := range lexicon.Federations {
		if tokens[fed] {
			return fed
		}
	}
	return ""
}

// InEurope reports whether an event is in Europe. The location decides
// when it names a place either way; otherwise the title does. A place known
// to be outside Europe wins over a European name in the same text, so
// "Porto Alegre, Brazil" is rejected.
func InEurope(location, title string) bool {
	for _, text := range []string{location, title} {
		if lexicon.OutsideEurope(text) {
			return false
		}
		if lexicon.InEurope(text) {
			return true
		}
	}
	return false
}

func firstMatch(lower string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
