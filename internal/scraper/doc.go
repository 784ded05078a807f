// Package scraper holds the per-source extractors.
//
// Each extractor implements Extractor: it receives the already fetched
// listing document and returns unvalidated event.Candidate values in document
// order. Four shapes cover the configured sources:
//
//   - Anchor walks links whose href carries a marker such as "/event/" and
//     derives title, city and country from the link text and URL slug.
//   - Cards reads repeated card blocks exposing name, date and location fields.
//   - Payload prefers the embedded Next.js JSON payload and falls back to a
//     link scrape of the same document.
//   - Strict collects detail URLs from a JSON-LD item list, fetches each page
//     and keeps only grappling events, optionally restricted to Europe.
//
// A malformed record never aborts a batch; it is logged at debug level and
// skipped.
package scraper
