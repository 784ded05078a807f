// Package lexicon holds the static knowledge tables used by the extraction pipeline.
//
// Everything here is data: city to country mappings, country-name aliases, the
// title stoplist used to pull a city out of a sponsor-heavy event title, sport
// keyword taxonomies, federation acronyms and the European gazetteer. The tables
// are package-level values built once at init and never mutated, so they can be
// shared freely and tested independently of the extractors that consume them.
package lexicon
