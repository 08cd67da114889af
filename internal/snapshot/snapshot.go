// Package snapshot builds and compares per-product observations.
package snapshot

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/extract"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/price"
)

// ProductRule is the compiled monitoring configuration for one product.
type ProductRule struct {
	URL   string
	Name  string
	Price extract.Rule
	Stock extract.Rule
}

// Snapshot is one product's observed state at one point in time.
//
// Nil fields mean the value could not be observed, which is a valid
// outcome rather than an error. RawPrice is kept even when normalization
// fails so extraction drift can be diagnosed from the state file. Stock is
// free-form storefront text ("Em stock", "Esgotado") and is never
// normalized.
type Snapshot struct {
	URL      string           `json:"url"`
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	RawPrice *string          `json:"raw_price"`
	Stock    *string          `json:"stock"`
}

// Take extracts a snapshot of one product from a fetched page. Missing
// fields stay nil; Take never fails.
func Take(doc *goquery.Document, rawHTML string, rule ProductRule) Snapshot {
	snap := Snapshot{URL: rule.URL, Name: rule.Name}
	if snap.Name == "" {
		snap.Name = rule.URL
	}
	if raw, ok := extract.Extract(doc, rawHTML, rule.Price); ok {
		snap.RawPrice = &raw
		if p, ok := price.Normalize(raw); ok {
			snap.Price = &p
		}
	}
	if stock, ok := extract.Extract(doc, rawHTML, rule.Stock); ok {
		snap.Stock = &stock
	}
	return snap
}
