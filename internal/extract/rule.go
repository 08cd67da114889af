// Package extract implements the layered field-extraction strategy used to
// pull price and stock values out of product pages.
package extract

import (
	"fmt"
	"regexp"
)

// Rule describes how a single field is located within a product page.
//
// All three parts are optional: the selector identifies a document node,
// the selector regex refines that node's text, and the full-HTML regex is
// a fallback applied to the raw document when no node matched. A rule with
// no parts always resolves to nothing.
type Rule struct {
	selector string
	re       *regexp.Regexp
	fullRe   *regexp.Regexp
}

// NewRule compiles a rule from its configured parts. Empty strings mean
// "not configured". The full-HTML pattern is compiled case-insensitive
// with "." spanning line breaks, since it runs against the entire raw
// document rather than a trimmed node text.
func NewRule(selector, regex, fullHTMLRegex string) (Rule, error) {
	r := Rule{selector: selector}
	if regex != "" {
		re, err := regexp.Compile(regex)
		if err != nil {
			return Rule{}, fmt.Errorf("selector regex %q: %w", regex, err)
		}
		r.re = re
	}
	if fullHTMLRegex != "" {
		re, err := regexp.Compile("(?is)" + fullHTMLRegex)
		if err != nil {
			return Rule{}, fmt.Errorf("full-html regex %q: %w", fullHTMLRegex, err)
		}
		r.fullRe = re
	}
	return r, nil
}

// MustRule is NewRule for statically known patterns. It panics on invalid
// input and exists for tests and fixtures.
func MustRule(selector, regex, fullHTMLRegex string) Rule {
	r, err := NewRule(selector, regex, fullHTMLRegex)
	if err != nil {
		panic(err)
	}
	return r
}

// Empty reports whether no part of the rule is configured.
func (r Rule) Empty() bool {
	return r.selector == "" && r.re == nil && r.fullRe == nil
}
