package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type result struct {
	value string
	ok    bool
}

// strategy inspects the page and either claims the field, returning its
// final result, or passes so the next strategy in the chain can try.
type strategy func(doc *goquery.Document, raw string) (res result, claimed bool)

// first runs strategies in order and returns the result of the first one
// that claims the field.
func first(doc *goquery.Document, raw string, strategies ...strategy) (string, bool) {
	for _, s := range strategies {
		if res, claimed := s(doc, raw); claimed {
			return res.value, res.ok
		}
	}
	return "", false
}

// Extract resolves one field against the parsed document and the raw HTML
// it was parsed from. Strategies run in strict priority order: selector
// text (optionally refined by the selector regex), then the full-document
// regex. The fallback is only engaged when no selector node was found; a
// node whose declared regex does not match claims the field as absent.
func Extract(doc *goquery.Document, raw string, rule Rule) (string, bool) {
	return first(doc, raw, rule.fromSelector, rule.fromFullHTML)
}

func (r Rule) fromSelector(doc *goquery.Document, _ string) (result, bool) {
	if r.selector == "" || doc == nil {
		return result{}, false
	}
	sel := doc.Find(r.selector).First()
	if sel.Length() == 0 {
		// No matching node: the field falls through to the fallback.
		return result{}, false
	}
	text := strings.TrimSpace(sel.Text())
	if r.re == nil {
		return result{value: text, ok: true}, true
	}
	m := r.re.FindStringSubmatch(text)
	if len(m) < 2 {
		// A declared regex that misses means the field is absent. It must
		// not degrade to the unfiltered node text or the full-HTML
		// fallback, even when the fallback would have matched.
		return result{}, true
	}
	return result{value: m[1], ok: true}, true
}

func (r Rule) fromFullHTML(_ *goquery.Document, raw string) (result, bool) {
	if r.fullRe == nil {
		return result{}, false
	}
	m := r.fullRe.FindStringSubmatch(raw)
	if len(m) < 2 {
		return result{}, false
	}
	return result{value: m[1], ok: true}, true
}
