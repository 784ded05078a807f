// Package calendar renders catalogue events as iCalendar (RFC 5545) data.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/lexicon"
)

const (
	prodID    = "-//Sports Events//sports-events//EN"
	uidDomain = "sports-events"
	// maxLineOctets is the RFC 5545 content line limit, excluding CRLF.
	maxLineOctets = 75
)

// GenerateICS generates an iCalendar (.ics) file for a single event.
func GenerateICS(evt *event.Event, now time.Time) string {
	return GenerateBulkICS([]*event.Event{evt}, "", now)
}

// GenerateBulkICS renders events as one calendar. Events are all-day
// entries on their start date. name, when set, becomes the calendar's
// display name.
func GenerateBulkICS(events []*event.Event, name string, now time.Time) string {
	var ics strings.Builder

	writeLine(&ics, "BEGIN:VCALENDAR")
	writeLine(&ics, "VERSION:2.0")
	writeLine(&ics, "PRODID:"+prodID)
	writeLine(&ics, "CALSCALE:GREGORIAN")
	writeLine(&ics, "METHOD:PUBLISH")
	if name != "" {
		writeLine(&ics, "X-WR-CALNAME:"+escapeICS(name))
	}

	stamp := formatICSTime(now)
	for _, evt := range events {
		writeEvent(&ics, evt, stamp)
	}

	writeLine(&ics, "END:VCALENDAR")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt *event.Event, stamp string) {
	start := evt.DateStart.Time()
	// DTEND is exclusive for all-day events.
	end := start.AddDate(0, 0, 1)

	writeLine(ics, "BEGIN:VEVENT")
	writeLine(ics, fmt.Sprintf("UID:%s@%s", evt.ID, uidDomain))
	writeLine(ics, "DTSTAMP:"+stamp)
	writeLine(ics, "DTSTART;VALUE=DATE:"+start.Format("20060102"))
	writeLine(ics, "DTEND;VALUE=DATE:"+end.Format("20060102"))
	writeLine(ics, "SUMMARY:"+escapeICS(evt.Title))
	writeLine(ics, "DESCRIPTION:"+escapeICS(description(evt)))
	if loc := location(evt); loc != "" {
		writeLine(ics, "LOCATION:"+escapeICS(loc))
	}
	writeLine(ics, "URL:"+evt.RegistrationLink)
	writeLine(ics, "CATEGORIES:"+escapeICS(string(evt.Category))+","+escapeICS(string(evt.SportTag)))
	writeLine(ics, "STATUS:CONFIRMED")
	writeLine(ics, "TRANSP:TRANSPARENT")
	writeLine(ics, "END:VEVENT")
}

func description(evt *event.Event) string {
	lines := []string{fmt.Sprintf("Sport: %s (%s)", evt.SportTag, evt.Category)}
	if fed := evt.FederationName(); fed != "" {
		lines = append(lines, "Federation: "+fed)
	}
	lines = append(lines, "Register at: "+evt.RegistrationLink)
	return strings.Join(lines, "\n")
}

// location prefers the full address and leaves out unresolved parts.
func location(evt *event.Event) string {
	if evt.Location.FullAddress != "" {
		return evt.Location.FullAddress
	}
	var parts []string
	for _, p := range []string{evt.Location.City, evt.Location.Country} {
		if p != "" && p != lexicon.Unknown && p != lexicon.International {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// writeLine writes one content line, folding it at 75 octets without
// splitting a UTF-8 sequence.
func writeLine(ics *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		// Continuation lines start with a space, which counts toward the limit.
		limit = maxLineOctets - 1
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
