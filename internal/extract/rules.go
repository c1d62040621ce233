// Package extract implements the fault-tolerant field extraction layer:
// declarative per-field rule tables, pagination hints, and link
// matching. Missing markup is the expected case throughout; every
// operation resolves absence to a sentinel or an empty result instead
// of failing.
package extract

import (
	"strings"

	"github.com/promo-watch/promoscrape/internal/markup"
	"github.com/promo-watch/promoscrape/pkg/models"
)

// Locator finds the raw text for a field inside a record fragment.
// It returns ok == false when the markup it targets is absent.
type Locator func(markup.Fragment) (string, bool)

// Rule is one (locate, transform) pair for a field. Rules are tried in
// declared order; the first rule whose locator finds a node wins and
// its transform decides the final value. A winning rule whose
// transform yields an empty string resolves to the sentinel, it does
// not fall through to later rules.
type Rule struct {
	Locate    Locator
	Transform Transform
}

// Table maps field names to their ordered rule lists. Fields fixes the
// declared field order of the output. Adding a field or a fallback
// rule is a table edit only; the orchestrator and retry layers never
// change.
type Table struct {
	Fields []string
	Rules  map[string][]Rule
}

// ExtractField resolves one field from a fragment, returning the
// sentinel when no rule locates a node.
func (t Table) ExtractField(frag markup.Fragment, field string) string {
	for _, rule := range t.Rules[field] {
		raw, ok := rule.Locate(frag)
		if !ok {
			continue
		}
		if rule.Transform != nil {
			raw = rule.Transform(raw)
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return models.Sentinel
		}
		return raw
	}
	return models.Sentinel
}

// Extract resolves every declared field of the table for one fragment.
// The result always carries the full field set.
func (t Table) Extract(frag markup.Fragment) map[string]string {
	values := make(map[string]string, len(t.Fields))
	for _, field := range t.Fields {
		values[field] = t.ExtractField(frag, field)
	}
	return values
}

// Text is a locator reading the text content of the first element
// matching the selector.
func Text(selector string) Locator {
	return func(frag markup.Fragment) (string, bool) {
		el := frag.Find(selector)
		if !el.Ok() {
			return "", false
		}
		return el.Text(), true
	}
}

// Attr is a locator reading an attribute of the first element matching
// the selector.
func Attr(selector, name string) Locator {
	return func(frag markup.Fragment) (string, bool) {
		el := frag.Find(selector)
		if !el.Ok() {
			return "", false
		}
		return el.Attr(name)
	}
}

// InnerHTML is a locator reading the inner HTML of the first element
// matching the selector.
func InnerHTML(selector string) Locator {
	return func(frag markup.Fragment) (string, bool) {
		el := frag.Find(selector)
		if !el.Ok() {
			return "", false
		}
		return el.HTML(), true
	}
}

// SiblingText is a locator reading the text of the first following
// sibling of selector matching siblingSelector.
func SiblingText(selector, siblingSelector string) Locator {
	return func(frag markup.Fragment) (string, bool) {
		el := frag.Find(selector)
		if !el.Ok() {
			return "", false
		}
		sib := el.Next(siblingSelector)
		if !sib.Ok() {
			return "", false
		}
		return sib.Text(), true
	}
}
