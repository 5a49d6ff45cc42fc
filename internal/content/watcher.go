package content

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/debatemebro/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of filesystem
// events to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a FileSource whenever its file changes on disk. Only
// sessions started after a reload see the new plans.
type Watcher struct {
	source   *FileSource
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	debounce time.Duration

	mu       sync.RWMutex
	onReload func(error)

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches the directory holding the source's file. Editors often
// save by renaming a temp file over the original, which a watch on the file
// itself would lose.
func NewWatcher(source *FileSource, logger *logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(source.Path())); err != nil {
		_ = fw.Close()
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Watcher{
		source:   source,
		watcher:  fw,
		logger:   logger.With("component", "plan_watcher"),
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetReloadCallback sets the function called after each reload attempt with
// its result.
func (w *Watcher) SetReloadCallback(cb func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = cb
}

// SetDebounce overrides DefaultDebounce. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop ends the watch loop and releases the underlying watcher. Safe to
// call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
}

// Done is closed once the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) watchLoop() {
	defer close(w.doneCh)

	target := filepath.Clean(w.source.Path())

	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C
	pending := false

	for {
		select {
		case <-w.stopCh:
			debounceTimer.Stop()
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			if !pending {
				continue
			}
			pending = false
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	err := w.source.Reload()

	w.mu.RLock()
	cb := w.onReload
	w.mu.RUnlock()
	if cb != nil {
		cb(err)
	}
}
