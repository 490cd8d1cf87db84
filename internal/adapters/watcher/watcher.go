// Package watcher implements ports.Watcher on top of fsnotify.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is how long the watcher waits for further events before
// delivering a batch.
const DefaultDebounceWindow = 100 * time.Millisecond

// skipDirectories are never watched.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// Watcher watches directory trees and coalesces their events into batches.
// A Watcher can be started once.
type Watcher struct {
	window time.Duration
	logger ports.Logger

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	changes   chan []string
}

// New creates a Watcher. The underlying fsnotify watcher is created by Start.
func New(window time.Duration, logger ports.Logger) *Watcher {
	return &Watcher{
		window:  window,
		logger:  logger,
		changes: make(chan []string),
	}
}

// Start begins watching roots recursively.
func (w *Watcher) Start(ctx context.Context, roots ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher != nil {
		return zerr.New("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	for _, root := range roots {
		for dir := range walkDirs(root) {
			if err := fsw.Add(dir); err != nil {
				_ = fsw.Close()
				return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
			}
		}
	}

	w.fsWatcher = fsw
	go w.run(ctx, fsw)
	return nil
}

// Stop closes the fsnotify watcher. It is safe to call on a watcher that was
// never started.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

// Changes yields batches of changed paths, sorted, until the watcher stops or
// its context is canceled.
func (w *Watcher) Changes() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for batch := range w.changes {
			if !yield(batch) {
				return
			}
		}
	}
}

// run owns the changes channel. Pending paths are flushed once no event has
// arrived for the debounce window.
//
//nolint:cyclop // Single select loop
func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.changes)

	pending := make(map[string]struct{})
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending[event.Name] = struct{}{}
			flush = time.After(w.window)

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for dir := range walkDirs(event.Name) {
						_ = fsw.Add(dir)
					}
				}
			}

		case <-flush:
			flush = nil
			batch := slices.Sorted(maps.Keys(pending))
			clear(pending)
			select {
			case w.changes <- batch:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("file watcher: %v", err))
		}
	}
}

// walkDirs yields root and every directory below it, skipping skipDirectories.
func walkDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDirectories[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
