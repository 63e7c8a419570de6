// Package watch re-runs a callback when any of a set of input files changes.
// It backs the `format --watch` mode: edit the prompt list or the template
// and the output files are regenerated.
package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/promptforge/errors"
	"github.com/teranos/promptforge/logger"
)

// Watcher watches input files and triggers a debounced callback on change.
type Watcher struct {
	watcher        *fsnotify.Watcher
	onChange       func()
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	done           chan struct{}
}

// New creates a watcher over the given paths. Duplicate paths are fine;
// fsnotify ignores re-adds.
func New(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	for _, p := range paths {
		if err := fw.Add(p); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", p)
		}
	}

	return &Watcher{
		watcher:        fw,
		debouncePeriod: 500 * time.Millisecond, // editors fire bursts of writes
		done:           make(chan struct{}),
	}, nil
}

// OnChange registers the callback invoked after changes settle. Must be set
// before Start.
func (w *Watcher) OnChange(fn func()) {
	w.onChange = fn
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Write covers in-place saves; Create/Rename cover editors that
			// replace the file atomically.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				logger.Debugw("Input change detected",
					"file", event.Name,
					"op", event.Op.String())
				w.scheduleRun()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// scheduleRun debounces rapid changes before invoking the callback.
func (w *Watcher) scheduleRun() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if w.onChange != nil {
			w.onChange()
		}
	})
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
