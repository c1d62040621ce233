package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// MatchURLs filters candidate link values against a path pattern,
// preserving input order. The pattern is treated as a regular
// expression anchored at the start of the link; if it does not compile
// it degrades to a plain prefix match. Candidates that are not strings
// (absent href attributes surface as nil) are silently skipped.
func MatchURLs(candidates []any, pattern string) []string {
	var matched []string
	match := matcherFor(pattern)
	for _, c := range candidates {
		s, ok := c.(string)
		if !ok {
			continue
		}
		if match(s) {
			matched = append(matched, s)
		}
	}
	return matched
}

// MatchStrings is MatchURLs for links already known to be strings.
func MatchStrings(links []string, pattern string) []string {
	candidates := make([]any, len(links))
	for i, l := range links {
		candidates[i] = l
	}
	return MatchURLs(candidates, pattern)
}

func matcherFor(pattern string) func(string) bool {
	anchored := pattern
	if !strings.HasPrefix(anchored, "^") {
		anchored = "^" + anchored
	}
	re, err := regexp.Compile(anchored)
	if err != nil {
		return func(s string) bool { return strings.HasPrefix(s, pattern) }
	}
	return re.MatchString
}

// StripQuery removes the query string and fragment from a link,
// returning the input unchanged when it is not a parseable URL.
func StripQuery(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// ResolveURL resolves a possibly-relative href against a base URL.
func ResolveURL(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}
