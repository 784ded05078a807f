package calendar

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/sports-events/internal/event"
)

var stamp = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func testEvent(t *testing.T, id, title, date string) *event.Event {
	t.Helper()
	d, err := event.ParseISODate(date)
	if err != nil {
		t.Fatal(err)
	}
	fed := "IBJJF"
	return &event.Event{
		ID:               id,
		Title:            title,
		DateStart:        d,
		Location:         event.Location{City: "Lisboa", Country: "Portugal", FullAddress: "Pavilhão, Lisboa, Portugal"},
		Category:         event.CategoryCombat,
		SportTag:         event.SportJJB,
		RegistrationLink: "https://ibjjf.com/events/" + id,
		Federation:       &fed,
	}
}

func TestGenerateICS(t *testing.T) {
	ics := GenerateICS(testEvent(t, "european-open-2025", "European Open", "2025-01-22"), stamp)

	// Check required ICS fields
	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Sports Events//sports-events//EN",
		"BEGIN:VEVENT",
		"UID:european-open-2025@sports-events",
		"DTSTAMP:20240615T103000Z",
		"DTSTART;VALUE=DATE:20250122",
		"DTEND;VALUE=DATE:20250123",
		"SUMMARY:European Open",
		"DESCRIPTION:Sport: jjb (combat)\\nFederation: IBJJF\\nRegister at: https://ibjjf.com/events/european-open-2025",
		"LOCATION:Pavilhão\\, Lisboa\\, Portugal",
		"URL:https://ibjjf.com/events/european-open-2025",
		"CATEGORIES:combat,jjb",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s\n%s", field, ics)
		}
	}

	if strings.Contains(ics, "X-WR-CALNAME") {
		t.Error("single event calendar should have no name")
	}
	for _, line := range strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n") {
		if strings.Contains(line, "\n") {
			t.Errorf("line %q contains a bare newline", line)
		}
	}
}

func TestGenerateBulkICS(t *testing.T) {
	events := []*event.Event{
		testEvent(t, "event1", "Event 1", "2025-03-15"),
		testEvent(t, "event2", "Event 2", "2025-04-20"),
		testEvent(t, "event3", "Event 3", "2025-12-31"),
	}

	ics := GenerateBulkICS(events, "Combat Events - France", stamp)

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("expected 3 VEVENTs, got %d", got)
	}
	if got := strings.Count(ics, "BEGIN:VCALENDAR"); got != 1 {
		t.Errorf("expected one VCALENDAR, got %d", got)
	}
	if !strings.Contains(ics, "X-WR-CALNAME:Combat Events - France") {
		t.Error("missing calendar name")
	}
	if !strings.Contains(ics, "DTEND;VALUE=DATE:20260101") {
		t.Error("end date should roll over into the next year")
	}
}

func TestGenerateBulkICS_Empty(t *testing.T) {
	ics := GenerateBulkICS(nil, "", stamp)
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty catalogue should produce no events")
	}
	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Errorf("malformed empty calendar: %q", ics)
	}
}

func TestLocation(t *testing.T) {
	evt := testEvent(t, "x", "X Open", "2025-01-01")

	evt.Location = event.Location{City: "Paris", Country: "France"}
	if got := location(evt); got != "Paris, France" {
		t.Errorf("location = %q", got)
	}
	evt.Location = event.Location{City: "Paris", Country: "International"}
	if got := location(evt); got != "Paris" {
		t.Errorf("location = %q, want International omitted", got)
	}
	evt.Location = event.Location{City: "Unknown", Country: "Unknown"}
	if got := location(evt); got != "" {
		t.Errorf("location = %q, want empty", got)
	}
	if strings.Contains(GenerateICS(evt, stamp), "LOCATION:") {
		t.Error("unresolved location should be omitted")
	}
}

func TestWriteLine_Folding(t *testing.T) {
	long := "SUMMARY:" + strings.Repeat("Campeonato Europeu de Jiu-Jitsu Sem Kimono ", 4) + "Lisboa ção"

	var b strings.Builder
	writeLine(&b, long)
	out := b.String()

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	if len(lines) < 3 {
		t.Fatalf("expected folded lines, got %d", len(lines))
	}
	var rebuilt strings.Builder
	for i, line := range lines {
		if len(line) > maxLineOctets {
			t.Errorf("line %d is %d octets", i, len(line))
		}
		if !utf8.ValidString(line) {
			t.Errorf("line %d splits a UTF-8 sequence: %q", i, line)
		}
		if i > 0 {
			if !strings.HasPrefix(line, " ") {
				t.Errorf("continuation line %d does not start with a space", i)
			}
			line = line[1:]
		}
		rebuilt.WriteString(line)
	}
	if rebuilt.String() != long {
		t.Errorf("unfolded text differs:\n got %q\nwant %q", rebuilt.String(), long)
	}
}

func TestFormatICSTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	if got := formatICSTime(time.Date(2025, 3, 15, 10, 0, 0, 0, loc)); got != "20250315T090000Z" {
		t.Errorf("formatICSTime() = %q", got)
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text with, comma", "Text with\\, comma"},
		{"Text with; semicolon", "Text with\\; semicolon"},
		{"Text with\\backslash", "Text with\\\\backslash"},
		{"Text with\nnewline", "Text with\\nnewline"},
		{"All, special; chars\\\n", "All\\, special\\; chars\\\\\\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeICS(tt.input)
			if got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
