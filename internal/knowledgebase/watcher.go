package knowledgebase

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"dirok/internal/inference/models"
	dErrors "dirok/pkg/domain-errors"
)

const defaultDebounce = 500 * time.Millisecond

// ReloadFunc receives each successfully loaded snapshot.
type ReloadFunc func(ctx context.Context, kb *models.KnowledgeBase) error

// Watcher reloads a knowledge-base file whenever it changes on disk.
//
// Bursts of events from a single save collapse into one reload after the
// debounce period. A file that fails to load is logged and skipped; the
// previous snapshot stays active.
type Watcher struct {
	path     string
	reload   ReloadFunc
	debounce time.Duration
	logger   *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func WithWatchLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

func NewWatcher(path string, reload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	if path == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "knowledge base path is required to watch")
	}
	if reload == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reload callback is required")
	}
	w := &Watcher{
		path:     filepath.Clean(path),
		reload:   reload,
		debounce: defaultDebounce,
		logger:   slog.Default(),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Ready is closed once the file system watch is in place, or Run has failed.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run blocks until ctx is done. The parent directory is watched rather than
// the file so that atomic replace-by-rename is seen.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.signalReady()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create file watcher")
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to watch "+w.path)
	}
	w.logger.InfoContext(ctx, "watching knowledge base", "path", w.path, "debounce", w.debounce)
	w.signalReady()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "knowledge base watcher error", "path", w.path, "error", err)

		case <-timer.C:
			w.reloadOnce(ctx)
		}
	}
}

func (w *Watcher) reloadOnce(ctx context.Context) {
	kb, err := LoadFile(w.path)
	if err != nil {
		w.logger.WarnContext(ctx, "knowledge base reload skipped, keeping previous snapshot",
			"path", w.path,
			"error", err,
		)
		return
	}
	if err := w.reload(ctx, kb); err != nil {
		w.logger.ErrorContext(ctx, "knowledge base reload rejected", "path", w.path, "error", err)
		return
	}
	symptoms, diseases, rules := kb.Counts()
	w.logger.InfoContext(ctx, "knowledge base reloaded",
		"path", w.path,
		"symptoms", symptoms,
		"diseases", diseases,
		"rules", rules,
	)
}

func (w *Watcher) signalReady() {
	w.readyOnce.Do(func() { close(w.ready) })
}
