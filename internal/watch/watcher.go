// Package watch re-runs the optimization pipeline whenever a watched
// Dockerfile changes on disk. Events are debounced so editors that write
// in several bursts trigger a single run.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"docktor/internal/logging"
)

// Watcher monitors a single Dockerfile. The watch is placed on the
// containing directory because most editors replace files on save, which
// drops a watch held on the file itself.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string // cleaned path of the watched file
	dir      string
	debounce time.Duration
	fn       func(path string)
	pending  time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New creates a watcher for path that calls fn after changes settle for
// the debounce interval.
func New(path string, debounce time.Duration, fn func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	clean := filepath.Clean(path)
	return &Watcher{
		watcher:  fsw,
		path:     clean,
		dir:      filepath.Dir(clean),
		debounce: debounce,
		fn:       fn,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; events are handled in a goroutine
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	logging.Watch("watching %s", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("error closing watcher: %v", err)
	}
	logging.Watch("stopped watching %s", w.path)
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// Poll interval for the debounce window.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watch error: %v", err)

		case <-ticker.C:
			w.fireSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	logging.WatchDebug("%s event for %s", event.Op, event.Name)

	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// fireSettled invokes the callback once changes have been quiet for the
// debounce interval.
func (w *Watcher) fireSettled() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	logging.Watch("change settled, re-running for %s", w.path)
	w.fn(w.path)
}
