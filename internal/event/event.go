package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// Category is the coarse discipline family of an event.
type Category string

const (
	CategoryCombat    Category = "combat"
	CategoryEndurance Category = "endurance"
	CategoryForce     Category = "force"
)

// Categories lists every valid Category in display order.
var Categories = []Category{CategoryCombat, CategoryEndurance, CategoryForce}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// SportTag identifies the sport of an event.
type SportTag string

const (
	SportJJB       SportTag = "jjb"
	SportHyrox     SportTag = "hyrox"
	SportMMA       SportTag = "mma"
	SportCrossfit  SportTag = "crossfit"
	SportGrappling SportTag = "grappling"
	SportTrail     SportTag = "trail"
	SportMarathon  SportTag = "marathon"
	SportRunning   SportTag = "running"
)

// SportTags lists every valid SportTag in display order.
var SportTags = []SportTag{
	SportJJB, SportHyrox, SportMMA, SportCrossfit,
	SportGrappling, SportTrail, SportMarathon, SportRunning,
}

// Valid reports whether s is a member of the closed sport tag set.
func (s SportTag) Valid() bool {
	for _, v := range SportTags {
		if s == v {
			return true
		}
	}
	return false
}

// Location is where an event takes place. City and Country hold
// lexicon.Unknown when they could not be resolved.
type Location struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	FullAddress string `json:"full_address,omitempty"`
}

// Event is a validated catalogue entry.
type Event struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	DateStart        Date     `json:"date_start"`
	Location         Location `json:"location"`
	Category         Category `json:"category"`
	SportTag         SportTag `json:"sport_tag"`
	RegistrationLink string   `json:"registration_link"`
	Federation       *string  `json:"federation"`
	ImageLogoURL     *string  `json:"image_logo_url"`
}

// FederationName returns the federation or "" when unknown.
func (e *Event) FederationName() string {
	if e.Federation == nil {
		return ""
	}
	return *e.Federation
}

// ImageURL returns the logo URL or "" when unavailable.
func (e *Event) ImageURL() string {
	if e.ImageLogoURL == nil {
		return ""
	}
	return *e.ImageLogoURL
}

// GenerateID creates a deterministic ID from a source name and a raw key such
// as an absolute URL.
func GenerateID(source, raw string) string {
	h := sha1.New()
	h.Write([]byte(strings.ToLower(source) + "|" + raw))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// optional returns a pointer to s, or nil when s is blank.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
