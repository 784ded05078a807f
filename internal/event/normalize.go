package event

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/sports-events/internal/lexicon"
	"github.com/pfrederiksen/sports-events/internal/parse"
)

// MinTitleLength is the shortest accepted title, in characters, after trimming.
const MinTitleLength = 3

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError names the first field of a candidate that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Candidate is a partially populated, unvalidated event proposed by an extractor.
// Extractors fill what their source exposes and leave the rest empty.
type Candidate struct {
	Source      string
	ID          string
	Title       string
	DateText    string     // raw date text, parsed when Date is nil
	Date        *time.Time // date already resolved by the extractor
	City        string
	Country     string
	FullAddress string
	Category    Category
	SportTag    SportTag
	Federation  string
	Link        string
	Image       string
}

// Policy controls the fallbacks Normalize applies.
type Policy struct {
	// Now returns the reference time; nil means time.Now.
	Now func() time.Time
	// DateFallback is used when DateText cannot be parsed. The zero value is today.
	DateFallback parse.Fallback
}

func (p Policy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Normalize validates a candidate and builds the canonical Event.
//
// Checks run in order: title, date, category and sport tag, registration
// link. The first failure is returned as a *ValidationError and no Event is
// produced. An unparseable date is not a failure; the policy fallback is used.
func Normalize(c Candidate, p Policy) (*Event, error) {
	title := strings.Join(strings.Fields(c.Title), " ")
	if len([]rune(title)) < MinTitleLength {
		return nil, &ValidationError{Field: "title", Reason: fmt.Sprintf("%q shorter than %d characters", title, MinTitleLength)}
	}

	now := p.now()
	var date Date
	if c.Date != nil && !c.Date.IsZero() {
		date = NewDate(*c.Date)
	} else {
		date = NewDate(parse.ResolveDate(c.DateText, now, p.DateFallback))
	}

	if !c.Category.Valid() {
		return nil, &ValidationError{Field: "category", Reason: fmt.Sprintf("%q is not a known category", c.Category)}
	}
	if !c.SportTag.Valid() {
		return nil, &ValidationError{Field: "sport_tag", Reason: fmt.Sprintf("%q is not a known sport tag", c.SportTag)}
	}

	link := strings.TrimSpace(c.Link)
	if link == "" {
		return nil, &ValidationError{Field: "registration_link", Reason: "empty"}
	}
	if u, err := url.Parse(link); err != nil || !u.IsAbs() || u.Host == "" {
		return nil, &ValidationError{Field: "registration_link", Reason: fmt.Sprintf("%q is not an absolute URL", link)}
	}

	evt := &Event{
		ID:               strings.TrimSpace(c.ID),
		Title:            title,
		DateStart:        date,
		Location:         normalizeLocation(c),
		Category:         c.Category,
		SportTag:         c.SportTag,
		RegistrationLink: link,
		Federation:       optional(c.Federation),
		ImageLogoURL:     optional(c.Image),
	}
	if evt.ID == "" {
		evt.ID = deriveID(title, date)
	}
	return evt, nil
}

func normalizeLocation(c Candidate) Location {
	loc := Location{
		City:        strings.TrimSpace(c.City),
		Country:     strings.TrimSpace(c.Country),
		FullAddress: strings.Join(strings.Fields(c.FullAddress), " "),
	}
	if loc.City == "" {
		loc.City = lexicon.Unknown
	}
	if loc.Country == "" {
		loc.Country = lexicon.Unknown
	}
	return loc
}

// deriveID builds a deterministic ID from the title slug and date, falling
// back to a random UUID when the title has no slug-able characters.
func deriveID(title string, date Date) string {
	if slug := parse.Slugify(title); slug != "" {
		return slug + "-" + date.Time().Format("20060102")
	}
	return uuid.NewString()
}
