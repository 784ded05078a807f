// Package event defines the canonical catalogue entry and turns extractor
// candidates into validated events.
//
// An Event is only ever built by Normalize, which enforces the title length,
// resolves the start date (falling back to a policy date when the source text
// cannot be parsed), checks category and sport tag against their closed sets
// and requires an absolute registration link. Candidates that fail are
// dropped by the caller. IDs come from the source when it has one, otherwise
// from the title slug and date, and as a last resort a random UUID.
//
// The package also compares two catalogues (Diff) so a run can report which
// events appeared, disappeared or changed since the previous output.
package event
