// Package watch reloads a file-backed stub when the file changes on disk.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/getmockd/wirestub/pkg/logging"
)

// DefaultDebounce collapses the bursts of events editors produce on save.
const DefaultDebounce = 50 * time.Millisecond

// Event reports one reload attempt or a watcher error.
type Event struct {
	Path string
	Err  error
}

// Watcher calls reload after the watched file is written or recreated.
type Watcher struct {
	path     string
	reload   func() error
	log      *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	running bool
	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	eventCh chan Event
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, reload func() error, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		reload:   reload,
		log:      logging.Nop(),
		debounce: DefaultDebounce,
		eventCh:  make(chan Event, 10),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The parent directory is watched so files
// replaced by rename are still seen. Events are dropped when the channel
// is full.
func (w *Watcher) Start() (<-chan Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return w.eventCh, nil
	}

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", w.path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w.path = abs
	w.fsw = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.loop(fsw, w.stopCh, w.doneCh)

	w.log.Info("watching stub file", "path", abs)
	return w.eventCh, nil
}

// Stop stops watching and waits for the loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	close(w.stopCh)
	w.running = false
	doneCh, fsw := w.doneCh, w.fsw
	w.mu.Unlock()

	<-doneCh
	return fsw.Close()
}

func (w *Watcher) loop(fsw *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-stopCh:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "path", w.path, "error", err)
			w.send(Event{Path: w.path, Err: err})
		case <-timer.C:
			err := w.reload()
			if err != nil {
				w.log.Warn("stub reload failed", "path", w.path, "error", err)
			} else {
				w.log.Info("stub reloaded", "path", w.path)
			}
			w.send(Event{Path: w.path, Err: err})
		}
	}
}

func (w *Watcher) send(ev Event) {
	select {
	case w.eventCh <- ev:
	default:
	}
}
