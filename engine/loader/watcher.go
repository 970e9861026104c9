package loader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/fsnotify/fsnotify"
)

// watcher is the implementation of the Watcher interface.
type watcher struct {
	mu      *sync.Mutex
	wg      sync.WaitGroup
	fsw     *fsnotify.Watcher
	done    chan struct{}
	logger  *slog.Logger
	pending []string
	queued  map[string]struct{}
	closed  bool
}

// Watcher collects the names of files changed in the asset directory. Changes arrive on a background
// goroutine and are held until the frame loop drains them, so reloads only happen between frames.
type Watcher interface {
	// Drain returns the distinct changed file names (base names) in order of first change since the
	// previous Drain, and clears the queue.
	Drain() []string

	// Close stops watching. It is safe to call more than once.
	Close() error
}

var _ Watcher = &watcher{}

// NewWatcher starts watching dir for writes, creates and renames. Hidden files and editor backup
// files (trailing "~") are ignored.
//
// Parameters:
//   - dir: the directory to watch
//   - options: a variadic list of WatcherBuilderOption functions to configure the Watcher
//
// Returns:
//   - Watcher: the running watcher
//   - error: an error if the directory cannot be watched
func NewWatcher(dir string, options ...WatcherBuilderOption) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := newWatcher(fsw, options...)
	w.logger.Info("watching assets", "dir", dir)
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func newWatcher(fsw *fsnotify.Watcher, options ...WatcherBuilderOption) *watcher {
	w := &watcher{
		mu:     &sync.Mutex{},
		fsw:    fsw,
		done:   make(chan struct{}),
		queued: make(map[string]struct{}),
	}
	for _, option := range options {
		option(w)
	}
	w.logger = logging.Component(w.logger, "watcher")
	return w
}

func (w *watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.enqueue(filepath.Base(event.Name))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// enqueue records a changed file unless it is already pending or ignored.
func (w *watcher) enqueue(name string) {
	if name == "" || strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.queued[name]; ok {
		return
	}
	w.queued[name] = struct{}{}
	w.pending = append(w.pending, name)
	w.logger.Debug("asset changed", "name", name)
}

func (w *watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	names := w.pending
	w.pending = nil
	clear(w.queued)
	return names
}

func (w *watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	var err error
	if w.fsw != nil {
		err = w.fsw.Close()
	}
	w.wg.Wait()
	return err
}
