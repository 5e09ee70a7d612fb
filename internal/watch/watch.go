// Package watch reports changes under a set of paths, debounced.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses bursts of editor writes into one callback.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches directories recursively and single files.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
	// files restricts events in a watched parent directory to these names.
	files map[string]bool
	dirs  map[string]bool
}

// New starts watching paths. Missing paths are skipped; they are not picked
// up if created later.
func New(paths []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fw:       fw,
		debounce: debounce,
		logger:   logger,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		w.logger.Debug("not watching missing path", zap.String("path", path))
		return nil
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		w.files[path] = true
		return w.addDir(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			w.dirs[p] = true
			return w.addDir(p)
		}
		return nil
	})
}

func (w *Watcher) addDir(dir string) error {
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	return nil
}

// relevant reports whether an event on name should trigger a callback.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	if w.files[ev.Name] {
		return true
	}
	// Anything under a recursively watched directory.
	return w.dirs[filepath.Dir(ev.Name)]
}

// Run calls onChange with the sorted changed paths after each burst of
// events settles. It returns when ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	defer w.fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && w.dirs[filepath.Dir(ev.Name)] {
					if err := w.add(ev.Name); err != nil {
						w.logger.Warn("watching new directory", zap.String("path", ev.Name), zap.Error(err))
					}
				}
			}
			if !w.relevant(ev) {
				continue
			}
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			w.logger.Debug("change detected", zap.Strings("paths", changed))
			onChange(changed)
		}
	}
}
