// Package price normalizes locale-formatted price strings into canonical
// decimal values.
package price

import (
	"strings"

	"github.com/shopspring/decimal"
)

var stripper = strings.NewReplacer("€", "", " ", "", "\u00a0", "")

// Normalize parses a raw storefront price into a value rounded to two
// decimal places. The storefront formats prices the Portuguese way: "."
// groups thousands and "," separates decimals ("1.234,56 €"). Anything
// unparseable reports ok=false; a missing or malformed price is a valid
// observation, never an error.
func Normalize(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Decimal{}, false
	}
	v := stripper.Replace(raw)
	// "." is strictly a grouping character here: drop it before promoting
	// the comma to a decimal point, so "1.234,56" becomes "1234.56".
	v = strings.ReplaceAll(v, ".", "")
	v = strings.ReplaceAll(v, ",", ".")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d.Round(2), true
}
