package extract

import "strings"

// Transform is a pure text cleanup step applied to a located value.
// Locale-specific parsing heuristics live here as declarative table
// entries instead of control flow in the extractor.
type Transform func(string) string

// Before keeps the portion preceding the first occurrence of token.
// With the token absent the whole input is kept, matching the usual
// "price before currency symbol" reading of e.g. "3.49€".
func Before(token string) Transform {
	return func(s string) string {
		if i := strings.Index(s, token); i >= 0 {
			return strings.TrimSpace(s[:i])
		}
		return strings.TrimSpace(s)
	}
}

// BeforeRequired keeps the portion preceding the first occurrence of
// token, yielding "" when the token is absent. Use it when the token
// itself is the evidence the value exists.
func BeforeRequired(token string) Transform {
	return func(s string) string {
		i := strings.Index(s, token)
		if i < 0 {
			return ""
		}
		return strings.TrimSpace(s[:i])
	}
}

// After keeps the portion following the last occurrence of token.
// With the token absent it yields "", which the rule table resolves to
// the sentinel: the label is the evidence the value exists at all.
func After(token string) Transform {
	return func(s string) string {
		i := strings.LastIndex(s, token)
		if i < 0 {
			return ""
		}
		return strings.TrimSpace(s[i+len(token):])
	}
}

// Chain applies transforms left to right, stopping early once a step
// yields the empty string.
func Chain(transforms ...Transform) Transform {
	return func(s string) string {
		for _, t := range transforms {
			s = t(s)
			if s == "" {
				return ""
			}
		}
		return s
	}
}

// CollapseSpace trims the input and folds internal whitespace runs
// into single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
