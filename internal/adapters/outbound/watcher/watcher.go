package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for more writes before
// reporting a batch of changed files.
const DefaultDebounce = 300 * time.Millisecond

var skipDirs = map[string]bool{
	"node_modules": true,
	"build":        true,
	"vendor":       true,
}

// FileWatcher reports changed *.xml files under a directory tree.
type FileWatcher struct {
	root     string
	debounce time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	pending map[string]bool
}

func New(root string, debounce time.Duration, log *zap.Logger) *FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileWatcher{
		root:     root,
		debounce: debounce,
		log:      log,
		pending:  make(map[string]bool),
	}
}

// Run blocks until ctx is cancelled. Each debounce interval with activity
// results in one call to onChange with the sorted absolute paths of the XML
// files that were created or written and still exist.
func (w *FileWatcher) Run(ctx context.Context, onChange func(paths []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	absRoot, err := filepath.Abs(w.root)
	if err != nil {
		return err
	}
	if err := w.addRecursive(fsw, absRoot); err != nil {
		return err
	}
	w.log.Info("watching for changes", zap.String("root", absRoot), zap.Duration("debounce", w.debounce))

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-ticker.C:
			if paths := w.flush(); len(paths) > 0 {
				onChange(paths)
			}
		}
	}
}

func (w *FileWatcher) handle(fsw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if !strings.EqualFold(filepath.Ext(event.Name), ".xml") {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.addRecursive(fsw, event.Name); err != nil {
					w.log.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
				}
			}
		}
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = true
	w.mu.Unlock()
	w.log.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
}

func (w *FileWatcher) flush() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			paths = append(paths, p)
		}
	}
	w.pending = make(map[string]bool)
	sort.Strings(paths)
	return paths
}

func (w *FileWatcher) addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.log.Warn("failed to watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}
