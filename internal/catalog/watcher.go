package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"marketcrew/internal/logging"
)

// Watcher reloads a JSONStore when its backing file changes. Editors and
// atomic-save tools fire several events per save, so reloads are settle
// debounced: an event only marks the file dirty, and the reload happens
// once no further event has arrived for debounceDur. The last write of a
// rapid save burst always wins.
type Watcher struct {
	store       *JSONStore
	fsw         *fsnotify.Watcher
	debounceDur time.Duration
	pending     time.Time // last unprocessed event, zero when clean
}

// NewWatcher creates a watcher for the store's backing file. The watch is
// registered on the parent directory so rename-based saves are seen.
func NewWatcher(store *JSONStore) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		store:       store,
		fsw:         fsw,
		debounceDur: 500 * time.Millisecond,
	}, nil
}

// Run blocks, reloading the store after changes settle, until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	// The ticker drains settled events; each event just refreshes pending.
	settle := time.NewTicker(100 * time.Millisecond)
	defer settle.Stop()

	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.pending = time.Now()
		case <-settle.C:
			if w.pending.IsZero() || time.Since(w.pending) < w.debounceDur {
				continue
			}
			w.pending = time.Time{}
			if err := w.store.Reload(); err != nil {
				logging.Catalog("reload after change failed, keeping previous snapshot: %v", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logging.Catalog("watch error: %v", err)
		}
	}
}
