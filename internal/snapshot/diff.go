package snapshot

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ChangeKind tags what changed between two snapshots of the same product.
type ChangeKind int

const (
	// NewRecord marks the first time a product URL was snapshotted.
	NewRecord ChangeKind = iota
	// PriceChanged carries the old and new normalized prices.
	PriceChanged
	// StockChanged carries the old and new stock texts.
	StockChanged
)

// Change describes one detected difference. OldPrice/NewPrice are set for
// PriceChanged, OldStock/NewStock for StockChanged; NewRecord carries no
// values.
type Change struct {
	Kind     ChangeKind
	OldPrice *decimal.Decimal
	NewPrice *decimal.Decimal
	OldStock *string
	NewStock *string
}

// Describe renders the change as an operator-facing line.
func (c Change) Describe() string {
	switch c.Kind {
	case NewRecord:
		return "novo registo"
	case PriceChanged:
		return fmt.Sprintf("preço: %s → %s", formatPrice(c.OldPrice), formatPrice(c.NewPrice))
	case StockChanged:
		return fmt.Sprintf("stock: %s → %s", formatText(c.OldStock), formatText(c.NewStock))
	}
	return ""
}

// Detect compares the previously stored snapshot against the current one.
//
// A nil previous snapshot yields exactly one NewRecord change and nothing
// else. Otherwise price and stock are compared by value, nil equal to nil,
// and each difference yields its own change in that order. An empty result
// means no news for the product. Detect is pure: no I/O, no mutation.
func Detect(prev *Snapshot, curr Snapshot) []Change {
	if prev == nil {
		return []Change{{Kind: NewRecord}}
	}
	var changes []Change
	if !priceEqual(prev.Price, curr.Price) {
		changes = append(changes, Change{
			Kind:     PriceChanged,
			OldPrice: prev.Price,
			NewPrice: curr.Price,
		})
	}
	if !textEqual(prev.Stock, curr.Stock) {
		changes = append(changes, Change{
			Kind:     StockChanged,
			OldStock: prev.Stock,
			NewStock: curr.Stock,
		})
	}
	return changes
}

func priceEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func textEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func formatPrice(p *decimal.Decimal) string {
	if p == nil {
		return "n/d"
	}
	return p.StringFixed(2)
}

func formatText(s *string) string {
	if s == nil {
		return "n/d"
	}
	return *s
}
