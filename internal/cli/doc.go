// Package cli implements the command-line interface for sports-events.
//
// The cli package provides the Cobra-based commands: scrape runs every
// enabled source and writes the catalogue (optionally diffing it against the
// previous one, exporting Prometheus metrics and publishing it to S3), list
// filters and prints a written catalogue, ics exports it as iCalendar and
// diff compares two catalogues.
package cli
