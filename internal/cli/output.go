package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/filter"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ListResult contains data to be output by list
type ListResult struct {
	Filter *filter.Filter `json:"filter,omitempty"`
	Events []*event.Event `json:"events"`
	Count  int            `json:"count"`
}

// WriteList writes the result in the specified format
func WriteList(w io.Writer, result *ListResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeListText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteDiff writes a catalogue diff in the specified format
func WriteDiff(w io.Writer, diff *event.DiffResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, diff)
	case FormatText:
		return writeDiffText(w, diff)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteScrapeReport writes the outcome of a scrape run
func WriteScrapeReport(w io.Writer, report *ScrapeReport, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeScrapeText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeListText(w io.Writer, result *ListResult, verbose bool) error {
	if result.Filter != nil && !result.Filter.IsEmpty() {
		fmt.Fprintf(w, "Filters: %s\n\n", result.Filter)
	}
	if result.Count == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, evt := range result.Events {
		writeEventLine(w, "", evt, verbose)
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", result.Count)
	return nil
}

func writeEventLine(w io.Writer, prefix string, evt *event.Event, verbose bool) {
	fmt.Fprintf(w, "%s%s  %-40s %s, %s [%s/%s]\n",
		prefix, evt.DateStart, evt.Title, evt.Location.City, evt.Location.Country, evt.Category, evt.SportTag)
	if verbose {
		indent := strings.Repeat(" ", len(prefix)+12)
		fmt.Fprintf(w, "%sID: %s\n", indent, evt.ID)
		if fed := evt.FederationName(); fed != "" {
			fmt.Fprintf(w, "%sFederation: %s\n", indent, fed)
		}
		fmt.Fprintf(w, "%sLink: %s\n", indent, evt.RegistrationLink)
		if img := evt.ImageURL(); img != "" {
			fmt.Fprintf(w, "%sImage: %s\n", indent, img)
		}
	}
}

func writeDiffText(w io.Writer, diff *event.DiffResult) error {
	if diff.Empty() {
		fmt.Fprintln(w, "No changes.")
		return nil
	}

	for _, evt := range diff.Added {
		writeEventLine(w, "+ ", evt, false)
	}
	for _, evt := range diff.Removed {
		writeEventLine(w, "- ", evt, false)
	}
	for _, c := range diff.Changes {
		fmt.Fprintf(w, "~ %s %s: %q -> %q\n", c.EventID, c.ChangeType, c.OldValue, c.NewValue)
	}
	fmt.Fprintf(w, "\nAdded: %d, Removed: %d, Changed: %d\n", len(diff.Added), len(diff.Removed), len(diff.Changes))
	return nil
}

func writeScrapeText(w io.Writer, report *ScrapeReport) error {
	fmt.Fprintf(w, "Wrote %d events to %s\n\n", report.Events, report.Output)

	fmt.Fprintln(w, "Sources:")
	for _, s := range report.Sources {
		if s.Failed() {
			fmt.Fprintf(w, "  %-20s FAILED: %s\n", s.Name, s.Error)
			continue
		}
		fmt.Fprintf(w, "  %-20s %d events (%d candidates, %d dropped)\n", s.Name, s.Events, s.Candidates, s.Dropped)
	}

	writeCounts(w, "By category:", report.Summary.ByCategory)
	writeCounts(w, "By sport:", report.Summary.BySport)

	if report.Diff != nil {
		fmt.Fprintf(w, "\nChanges since last run: %d added, %d removed, %d changed\n",
			len(report.Diff.Added), len(report.Diff.Removed), len(report.Diff.Changes))
	}
	if report.Published != nil {
		fmt.Fprintf(w, "\nPublished to %s\n", report.Published.PublicURL)
	}
	return nil
}

func writeCounts[K ~string](w io.Writer, title string, counts map[K]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "\n%s\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-12s %d\n", k, counts[K(k)])
	}
}
