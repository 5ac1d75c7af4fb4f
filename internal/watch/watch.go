// Package watch reloads files when they change on disk.
//
// Parent directories are watched rather than the files themselves so that
// editors which replace a file through rename keep triggering events.
// Events are debounced so a burst of writes produces one callback.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Config holds watcher options.
type Config struct {
	// Files to watch. Paths are made absolute.
	Files []string
	// Debounce is the quiet period before OnChange fires. Non-positive
	// values use the default.
	Debounce time.Duration
	// OnChange receives the changed files, deduplicated.
	OnChange func(changed []string)
	Logger   *slog.Logger
}

// Watcher watches a fixed set of files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	onChange func([]string)
	logger   *slog.Logger
}

// New starts watching the directories that contain cfg.Files.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Files) == 0 {
		return nil, fmt.Errorf("watch: no files to watch")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]struct{}, len(cfg.Files)),
		debounce: cfg.Debounce,
		onChange: cfg.OnChange,
		logger:   cfg.Logger,
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}

	dirs := make(map[string]struct{})
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: resolve %q: %w", f, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: add directory %q: %w", dir, err)
		}
	}
	return w, nil
}

// Run delivers debounced change notifications until ctx is cancelled. It
// closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
	)

	fire := func() {
		mu.Lock()
		changed := make([]string, 0, len(pending))
		for f := range pending {
			changed = append(changed, f)
		}
		clear(pending)
		mu.Unlock()

		if len(changed) > 0 && w.onChange != nil {
			w.onChange(changed)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("watch: close fsnotify", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			if !w.relevant(evt) {
				continue
			}
			w.logger.Debug("watch: file changed", "file", evt.Name, "op", evt.Op.String())

			mu.Lock()
			pending[filepath.Clean(evt.Name)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			w.logger.Warn("watch: fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(evt.Name)]; !ok {
		return false
	}
	return evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) || evt.Has(fsnotify.Rename) || evt.Has(fsnotify.Remove)
}
