package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler is invoked once per debounced batch of changes.
type Handler func(ctx context.Context) error

// Watcher watches one directory.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dir      string
	debounce time.Duration
	ignore   map[string]struct{}
	logger   *zap.Logger
}

// New creates a Watcher for dir. Call Close when done.
func New(dir string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive, got %s", debounce)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		dir:      dir,
		debounce: debounce,
		ignore:   make(map[string]struct{}),
		logger:   logger,
	}, nil
}

// Ignore excludes base file names from triggering runs.
func (w *Watcher) Ignore(names ...string) {
	for _, name := range names {
		w.ignore[name] = struct{}{}
	}
}

// Run watches the directory and calls handler after each debounced batch
// until ctx is cancelled. A handler error is logged and watching goes on.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching directory", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))
	return w.loop(ctx, w.fsw.Events, w.fsw.Errors, handler)
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// loop is the event loop, separated from fsnotify so it can be driven
// with plain channels.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, handler Handler) error {
	// Stop and Reset never leave a stale tick behind (Go 1.23 timer semantics).
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			if err := handler(ctx); err != nil {
				w.logger.Error("regeneration failed", zap.Error(err))
			}
		}
	}
}

// relevant filters out attribute-only changes and ignored names.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	_, ignored := w.ignore[filepath.Base(event.Name)]
	return !ignored
}
