package include

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/stemplate"
)

// WatchDir loads include files from a directory and caches their content,
// invalidating entries when the files change on disk. It is meant for
// long-running processes that render templates repeatedly: each include is
// read once and served from memory until fsnotify reports a change.
//
// Only files directly under the directory are watched. Includes in
// subdirectories still load, but their cache entries are not invalidated
// on change.
type WatchDir struct {
	dir       Dir
	watcher   *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once

	mu      sync.RWMutex
	entries map[string]string
}

// NewWatchDir starts watching root and returns the caching loader. Close
// must be called to release the watcher.
func NewWatchDir(root string) (*WatchDir, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}

	w := &WatchDir{
		dir:     Dir(root),
		watcher: watcher,
		done:    make(chan struct{}),
		entries: make(map[string]string),
	}
	go w.run()
	return w, nil
}

// Load returns the named include file, reading through the cache.
func (w *WatchDir) Load(name string) (string, error) {
	w.mu.RLock()
	content, ok := w.entries[name]
	w.mu.RUnlock()
	if ok {
		return content, nil
	}

	content, err := w.dir.Load(name)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	w.entries[name] = content
	w.mu.Unlock()
	return content, nil
}

// Close stops watching and releases the watcher. Close is idempotent.
func (w *WatchDir) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// run consumes filesystem events until Close, dropping cache entries for
// files that change.
func (w *WatchDir) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			w.mu.Lock()
			delete(w.entries, name)
			w.mu.Unlock()
			slog.Debug("stemplate: include cache entry invalidated", "name", name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are usually recoverable; keep serving the cache.
			_ = err
		}
	}
}

var _ stemplate.Loader = (*WatchDir)(nil)
