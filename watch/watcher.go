// Package watch recompiles a vocabulary when its source files change.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Config configures the source watcher
type Config struct {
	// Source is the file or glob pattern the compiler reads
	Source string

	// Debounce is how long to wait for more changes before recompiling
	Debounce time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// ChangeFunc is called with the sorted paths whose content changed since
// the last call. Calls never overlap.
type ChangeFunc func(ctx context.Context, paths []string)

// Watcher watches the source files of a compile
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// base is the directory the pattern is rooted at; pattern is the part
	// matched against paths below it.
	base    string
	pattern string

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op // path → most recent operation

	// path → content hash of the last compiled version
	hashes map[string]string
}

// New creates a watcher for the files matched by config.Source.
func New(config Config) (*Watcher, error) {
	abs, err := filepath.Abs(config.Source)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}

	base, pattern := filepath.Dir(abs), filepath.Base(abs)
	if containsGlob(abs) {
		base, pattern = doublestar.SplitPattern(filepath.ToSlash(abs))
		base = filepath.FromSlash(base)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if config.Debounce <= 0 {
		config.Debounce = 100 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		base:    base,
		pattern: pattern,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]string),
	}, nil
}

// Run watches until ctx is done, calling onChange after each settled batch
// of changes. It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.watcher.Close()

	if err := w.addWatches(); err != nil {
		return err
	}
	w.snapshot()

	w.logger.Info("Watching sources",
		"root", w.base,
		"pattern", w.pattern,
		"debounce", w.config.Debounce)

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if changed := w.flushPending(); len(changed) > 0 {
				onChange(ctx, changed)
			}
		}
	}
}

// addWatches watches the base directory, and every directory below it when
// the pattern can match at depth.
func (w *Watcher) addWatches() error {
	if !w.deep() {
		return w.watcher.Add(w.base)
	}

	return filepath.Walk(w.base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != w.base && strings.HasPrefix(filepath.Base(path), ".") {
			return filepath.SkipDir
		}
		w.addDir(path)
		return nil
	})
}

func (w *Watcher) addDir(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch directory",
			"path", path,
			"error", err)
	} else {
		w.logger.Debug("Watching directory", "path", path)
	}
}

// snapshot records the hashes of the files currently matched, so that the
// first flush only reports real edits. Only patterns that can match at depth
// walk the tree below base.
func (w *Watcher) snapshot() {
	if !w.deep() {
		matches, err := doublestar.Glob(os.DirFS(w.base), w.pattern)
		if err != nil {
			w.logger.Warn("Failed to list sources", "pattern", w.pattern, "error", err)
			return
		}
		for _, m := range matches {
			w.record(filepath.Join(w.base, filepath.FromSlash(m)))
		}
		return
	}

	_ = filepath.Walk(w.base, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !w.matches(path) {
			return nil
		}
		w.record(path)
		return nil
	})
}

func (w *Watcher) record(path string) {
	if hash, err := hashFile(path); err == nil {
		w.hashes[path] = hash
	}
}

// deep reports whether the pattern can match below the base directory.
func (w *Watcher) deep() bool {
	return strings.Contains(w.pattern, "**") || strings.Contains(w.pattern, "/")
}

// matches reports whether path is one of the watched sources.
func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	ok, err := doublestar.PathMatch(w.pattern, rel)
	return err == nil && ok
}

// handleFSEvent processes a single fsnotify event
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if !w.matches(path) {
		// Handle directory creation (for new watches)
		if event.Has(fsnotify.Create) && strings.Contains(w.pattern, "**") {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.addDir(path)
			}
		}
		return
	}

	// Accumulate pending changes
	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Source change detected",
		"path", path,
		"op", event.Op.String())
}

// flushPending returns the pending paths whose content actually changed.
func (w *Watcher) flushPending() []string {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return nil
	}

	// Copy and clear pending
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	var changed []string
	for path := range toProcess {
		hash, err := hashFile(path)
		if err != nil {
			// Removed or unreadable: changed if it was known.
			if _, known := w.hashes[path]; known {
				delete(w.hashes, path)
				changed = append(changed, path)
			}
			continue
		}

		if old, ok := w.hashes[path]; ok && old == hash {
			// Content unchanged, skip
			continue
		}
		w.hashes[path] = hash
		changed = append(changed, path)
	}

	sort.Strings(changed)
	return changed
}

func hashFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:]), nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
