// Package watcher watches the content tree and triggers rebuilds when
// files change, with debouncing so editor save bursts collapse into a
// single rebuild.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sebastienrousseau/staticdatagen/internal/logging"
)

// ChangeHandler is invoked with the paths that changed since the last
// debounce window closed.
type ChangeHandler func(ctx context.Context, paths []string) error

// FileFilter reports whether a changed path is relevant.
type FileFilter func(path string) bool

// MarkdownFilter accepts markdown content files.
func MarkdownFilter(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// Watcher debounces fsnotify events over a content tree.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   logging.Logger
	filters  []FileFilter
	handlers []ChangeHandler
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// New creates a Watcher over root and all of its subdirectories.
func New(root string, debounce time.Duration, logger logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	w := &Watcher{
		fsw:      fsw,
		logger:   logger.WithComponent("watcher"),
		debounce: debounce,
		pending:  map[string]struct{}{},
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}

// AddFilter registers a filter. A path is relevant when any filter
// accepts it; with no filters every path is relevant.
func (w *Watcher) AddFilter(f FileFilter) {
	w.filters = append(w.filters, f)
}

// AddHandler registers a change handler.
func (w *Watcher) AddHandler(h ChangeHandler) {
	w.handlers = append(w.handlers, h)
}

func (w *Watcher) relevant(path string) bool {
	if len(w.filters) == 0 {
		return true
	}
	for _, f := range w.filters {
		if f(path) {
			return true
		}
	}
	return false
}

// Start runs the event loop until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(ctx, err, "watch error")
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	// newly created directories need their own watch
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
		}
	}

	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if !w.relevant(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.flush(ctx)
	})
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = map[string]struct{}{}
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	w.logger.Debug(ctx, "changes detected", "count", len(paths))

	for _, h := range w.handlers {
		if err := h(ctx, paths); err != nil {
			w.logger.Error(ctx, err, "change handler failed")
		}
	}
}
