// Package store persists the last observed snapshot per product URL.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/snapshot"
)

// Store is the on-disk cache of last-known snapshots keyed by product URL.
//
// It is a cache, not a mirror of the configuration: entries for products
// removed from the config stay until cleared manually, so their last-known
// values survive configuration churn. Last write wins; no history is kept.
type Store struct {
	path    string
	entries map[string]snapshot.Snapshot
}

// Open loads the store from path. A missing file is an empty store, not an
// error; a corrupt file is an error so a run never silently reports every
// product as new.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: make(map[string]snapshot.Snapshot)}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}
	return s, nil
}

// Get returns the stored snapshot for a product URL.
func (s *Store) Get(url string) (snapshot.Snapshot, bool) {
	snap, ok := s.entries[url]
	return snap, ok
}

// Set overwrites the entry for snap's URL unconditionally. An observation
// with nil fields is still an observation and replaces the previous one.
func (s *Store) Set(snap snapshot.Snapshot) {
	s.entries[snap.URL] = snap
}

// Delete removes one entry and reports whether it existed.
func (s *Store) Delete(url string) bool {
	_, ok := s.entries[url]
	delete(s.entries, url)
	return ok
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.entries = make(map[string]snapshot.Snapshot)
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	return len(s.entries)
}

// URLs returns the stored product URLs in sorted order.
func (s *Store) URLs() []string {
	urls := make([]string, 0, len(s.entries))
	for url := range s.entries {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Save writes the whole store to disk, creating parent directories as
// needed. The content goes to a temp file first and is renamed into place,
// so a crash mid-write cannot truncate the previous state.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
