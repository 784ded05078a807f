// Package parse turns loosely formatted strings scraped from event listings
// into dates and places.
//
// The date parser accepts ranges ("10 Jan - 11 Jan, 2025"), missing years,
// English and French month names and dates buried in surrounding prose. It
// never returns an error: an unresolvable string yields ok == false and the
// caller applies a Fallback. The location helpers split "City, Country"
// fragments and fall back to lexicon.Unknown.
package parse
