package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"marketcrew/internal/logging"
)

// JSONStore serves lookups from a flat JSON file holding an array of
// records. The whole file is loaded at open; Reload re-reads it, and the
// Watcher calls Reload when the file changes on disk.
type JSONStore struct {
	mu      sync.RWMutex
	path    string
	records []Record
}

// OpenJSON loads the catalog file at path.
func OpenJSON(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the backing file. On failure the previous snapshot is
// kept so a half-written file does not wipe the catalog.
func (s *JSONStore) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("catalog store unreadable: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("catalog store not parseable: %w", err)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	logging.Catalog("loaded %d records from %s", len(records), s.path)
	return nil
}

// Lookup filters the in-memory snapshot.
func (s *JSONStore) Lookup(_ context.Context, productID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterRecords(s.records, productID), nil
}

// Path returns the backing file path, used by the Watcher.
func (s *JSONStore) Path() string { return s.path }

// Len returns the number of loaded records.
func (s *JSONStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *JSONStore) Close() error { return nil }
