// Package classify maps free-text event titles to a sport tag and federation.
//
// Keyword tables live in the lexicon package. Matching is case-insensitive
// substring search on the title, except for federation acronyms which must
// appear as whole tokens.
package classify
