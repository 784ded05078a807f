// Package fetch turns a URL into a parsed HTML document.
//
// Two implementations share the Fetcher interface: HTTP issues a plain GET,
// Renderer drives a headless Chrome through chromedp and waits a settle delay
// so client-side scripts can populate the page before the DOM is captured.
package fetch
