package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/snapshot"
)

func sampleSnapshot(url string) snapshot.Snapshot {
	p := decimal.RequireFromString("49.90")
	raw := "49,90 €"
	stock := "Em stock"
	return snapshot.Snapshot{
		URL:      url,
		Name:     "Ração 10kg",
		Price:    &p,
		RawPrice: &raw,
		Stock:    &stock,
	}
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("expected error for corrupt state file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Set(sampleSnapshot("https://mauser.pt/p/a"))
	s.Set(sampleSnapshot("https://mauser.pt/p/b"))
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reopened.Len())
	}
	snap, ok := reopened.Get("https://mauser.pt/p/a")
	if !ok {
		t.Fatal("entry for /p/a missing after reload")
	}
	if snap.Price == nil || snap.Price.StringFixed(2) != "49.90" {
		t.Errorf("Price = %v, want 49.90", snap.Price)
	}
	if snap.RawPrice == nil || *snap.RawPrice != "49,90 €" {
		t.Errorf("RawPrice = %v, want %q", snap.RawPrice, "49,90 €")
	}
	if snap.Stock == nil || *snap.Stock != "Em stock" {
		t.Errorf("Stock = %v, want %q", snap.Stock, "Em stock")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Set(sampleSnapshot("https://mauser.pt/p/a"))
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".state-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestSetOverwritesLastWriteWins(t *testing.T) {
	s := &Store{entries: make(map[string]snapshot.Snapshot)}
	s.Set(sampleSnapshot("u"))

	// A later observation with nothing extracted still replaces the entry.
	s.Set(snapshot.Snapshot{URL: "u", Name: "Ração 10kg"})

	snap, _ := s.Get("u")
	if snap.Price != nil || snap.Stock != nil {
		t.Errorf("entry not overwritten: %+v", snap)
	}
}

func TestDeleteAndURLs(t *testing.T) {
	s := &Store{entries: make(map[string]snapshot.Snapshot)}
	s.Set(sampleSnapshot("b"))
	s.Set(sampleSnapshot("a"))

	if got := s.URLs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("URLs = %v, want [a b]", got)
	}
	if !s.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if s.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
}
