package snapshot

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/extract"
)

const pageHTML = `
<html>
<body>
	<span class="price">49,90 €</span>
	<div class="availability">Em stock</div>
	<span class="broken-price">sob consulta</span>
</body>
</html>
`

func parsePage(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestTake(t *testing.T) {
	rule := ProductRule{
		URL:   "https://mauser.pt/p/racao-10kg",
		Name:  "Ração 10kg",
		Price: extract.MustRule(".price", "", ""),
		Stock: extract.MustRule(".availability", "", ""),
	}

	snap := Take(parsePage(t), pageHTML, rule)

	if snap.URL != rule.URL || snap.Name != rule.Name {
		t.Errorf("identity = %q/%q, want %q/%q", snap.URL, snap.Name, rule.URL, rule.Name)
	}
	if snap.RawPrice == nil || *snap.RawPrice != "49,90 €" {
		t.Errorf("RawPrice = %v, want %q", snap.RawPrice, "49,90 €")
	}
	if snap.Price == nil || snap.Price.StringFixed(2) != "49.90" {
		t.Errorf("Price = %v, want 49.90", snap.Price)
	}
	if snap.Stock == nil || *snap.Stock != "Em stock" {
		t.Errorf("Stock = %v, want %q", snap.Stock, "Em stock")
	}
}

func TestTakeNameDefaultsToURL(t *testing.T) {
	snap := Take(parsePage(t), pageHTML, ProductRule{URL: "https://mauser.pt/p/x"})
	if snap.Name != "https://mauser.pt/p/x" {
		t.Errorf("Name = %q, want the URL", snap.Name)
	}
}

func TestTakeKeepsRawPriceWhenNormalizationFails(t *testing.T) {
	rule := ProductRule{
		URL:   "https://mauser.pt/p/x",
		Price: extract.MustRule(".broken-price", "", ""),
	}

	snap := Take(parsePage(t), pageHTML, rule)

	if snap.RawPrice == nil || *snap.RawPrice != "sob consulta" {
		t.Errorf("RawPrice = %v, want %q", snap.RawPrice, "sob consulta")
	}
	if snap.Price != nil {
		t.Errorf("Price = %v, want nil", snap.Price)
	}
}

func TestTakeMissingFieldsStayNil(t *testing.T) {
	snap := Take(parsePage(t), pageHTML, ProductRule{URL: "https://mauser.pt/p/x"})
	if snap.Price != nil || snap.RawPrice != nil || snap.Stock != nil {
		t.Errorf("empty rules should observe nothing, got %+v", snap)
	}
}
