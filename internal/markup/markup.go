// Package markup wraps goquery behind the small query surface the
// extraction layer needs: find one fragment, find all fragments, read
// text and attributes. Absence is a normal result, never a panic.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw HTML.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Find returns the first fragment matching the CSS selector.
// The returned fragment reports Ok() == false when nothing matched.
func (d *Document) Find(selector string) Fragment {
	if d == nil || d.doc == nil {
		return Fragment{}
	}
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return Fragment{}
	}
	return Fragment{sel: sel.First()}
}

// FindAll returns every fragment matching the CSS selector, in document order.
func (d *Document) FindAll(selector string) []Fragment {
	if d == nil || d.doc == nil {
		return nil
	}
	return collect(d.doc.Find(selector))
}

// Links returns the href attribute of every anchor in the document,
// in document order. Anchors without an href contribute nil so callers
// see absent values rather than empty strings.
func (d *Document) Links() []any {
	if d == nil || d.doc == nil {
		return nil
	}
	var links []any
	d.doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			links = append(links, href)
		} else {
			links = append(links, nil)
		}
	})
	return links
}

// Fragment is one self-contained unit of markup, typically a single
// listing entry. The zero value is the absent fragment.
type Fragment struct {
	sel *goquery.Selection
}

// Ok reports whether the fragment is present.
func (f Fragment) Ok() bool {
	return f.sel != nil && f.sel.Length() > 0
}

// Find returns the first descendant fragment matching the selector.
func (f Fragment) Find(selector string) Fragment {
	if !f.Ok() {
		return Fragment{}
	}
	sel := f.sel.Find(selector)
	if sel.Length() == 0 {
		return Fragment{}
	}
	return Fragment{sel: sel.First()}
}

// FindAll returns every descendant fragment matching the selector.
func (f Fragment) FindAll(selector string) []Fragment {
	if !f.Ok() {
		return nil
	}
	return collect(f.sel.Find(selector))
}

// Next returns the first following sibling matching the selector.
func (f Fragment) Next(selector string) Fragment {
	if !f.Ok() {
		return Fragment{}
	}
	sel := f.sel.NextAllFiltered(selector)
	if sel.Length() == 0 {
		return Fragment{}
	}
	return Fragment{sel: sel.First()}
}

// Text returns the fragment's text content, whitespace-trimmed.
func (f Fragment) Text() string {
	if !f.Ok() {
		return ""
	}
	return strings.TrimSpace(f.sel.Text())
}

// Attr returns the named attribute and whether it exists.
func (f Fragment) Attr(name string) (string, bool) {
	if !f.Ok() {
		return "", false
	}
	return f.sel.Attr(name)
}

// HTML returns the fragment's inner HTML, or "" when absent.
func (f Fragment) HTML() string {
	if !f.Ok() {
		return ""
	}
	html, err := f.sel.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(html)
}

func collect(sel *goquery.Selection) []Fragment {
	if sel.Length() == 0 {
		return nil
	}
	out := make([]Fragment, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, Fragment{sel: s})
	})
	return out
}
