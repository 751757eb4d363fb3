// Package watcher reports debounced changes to a set of input files.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events a single save produces
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls a handler once per settled change of a watched file.
//
// Directories are watched rather than the files themselves so that editors
// which save by writing a new file and renaming it over the old one keep
// being tracked.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
	onChange func(path string)

	mu     sync.Mutex
	files  map[string]struct{}
	dirs   map[string]int
	timers map[string]*time.Timer
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets how long a file must be quiet before the handler runs
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher that calls onChange with the absolute path of each
// changed file. onChange runs on a timer goroutine.
func New(onChange func(path string), opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}

	w := &Watcher{
		fs:       fs,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		onChange: onChange,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts watching files
func (w *Watcher) Add(files ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve path %s", file)
		}
		if _, ok := w.files[abs]; ok {
			continue
		}

		dir := filepath.Dir(abs)
		if w.dirs[dir] == 0 {
			if err := w.fs.Add(dir); err != nil {
				return errors.Wrapf(err, "failed to watch %s", dir)
			}
		}
		w.dirs[dir]++
		w.files[abs] = struct{}{}
		w.logger.Debug("watching file", zap.String("path", abs))
	}
	return nil
}

// Remove stops watching files
func (w *Watcher) Remove(files ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve path %s", file)
		}
		if _, ok := w.files[abs]; !ok {
			continue
		}
		delete(w.files, abs)
		if t, ok := w.timers[abs]; ok {
			t.Stop()
			delete(w.timers, abs)
		}

		dir := filepath.Dir(abs)
		w.dirs[dir]--
		if w.dirs[dir] == 0 {
			delete(w.dirs, dir)
			if err := w.fs.Remove(dir); err != nil {
				return errors.Wrapf(err, "failed to unwatch %s", dir)
			}
		}
	}
	return nil
}

// Files returns the number of watched files
func (w *Watcher) Files() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

// Run dispatches events until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule(filepath.Clean(event.Name))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// schedule restarts the debounce timer of a watched file
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scheduleLocked(path)
}

// scheduleLocked is schedule with w.mu held
func (w *Watcher) scheduleLocked(path string) {
	if _, ok := w.files[path]; !ok {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		// a timer that fired while being replaced is stale
		if w.timers[path] != t {
			w.mu.Unlock()
			return
		}
		delete(w.timers, path)
		w.mu.Unlock()

		w.logger.Debug("file changed", zap.String("path", path))
		w.onChange(path)
	})
	w.timers[path] = t
}

// Close stops pending timers and releases the underlying watcher
func (w *Watcher) Close() error {
	w.mu.Lock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()
	return errors.Wrap(w.fs.Close(), "failed to close watcher")
}
