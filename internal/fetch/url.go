package fetch

import (
	"net/url"
	"strings"
)

func parseURL(raw string) (*url.URL, error) {
	return url.Parse(raw)
}

// Resolve turns href into an absolute URL against base. It returns "" for
// empty, fragment-only, javascript: and mailto: links and for hrefs that do
// not parse.
func Resolve(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ""
	}
	return b.ResolveReference(ref).String()
}
