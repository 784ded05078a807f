// Package aggregator runs every configured source and merges the validated
// events into one catalogue sorted by start date.
//
// Sources are isolated from each other: a fetch failure, an extractor error
// or a panic inside an extractor costs that source its events and nothing
// else. Candidates that fail validation are dropped and counted. Sources run
// one after another unless Options.Parallel is set, in which case each source
// fills its own slice and the slices are merged in configured order, so the
// resulting catalogue is identical either way.
//
// Events describing the same real-world competition on two different sources
// are not merged.
package aggregator
