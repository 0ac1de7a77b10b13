package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/sfcmap/sfcmap/pkg/report"
)

// WatchOptions controls incremental re-analysis behavior.
type WatchOptions struct {
	// DebounceMs groups rapid changes to the same file into a single
	// re-analysis. Default: 200ms.
	DebounceMs int

	// OnUpdate is invoked with the refreshed report after each applied
	// change. Called from the watcher goroutine; may be nil.
	OnUpdate func(*report.Report)
}

// Watcher keeps a report in sync with a directory tree. It re-analyzes
// only the files that changed, never the whole workspace.
type Watcher struct {
	watcher *fsnotify.Watcher
	scanner *Scanner
	cfg     ScanConfig
	options WatchOptions
	logger  *slog.Logger

	root string

	// Live report, updated in place as events arrive.
	reportMu sync.RWMutex
	current  *report.Report

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher wraps an initial scan result for incremental maintenance.
func NewWatcher(scanner *Scanner, initial *report.Report, cfg ScanConfig, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}

	return &Watcher{
		watcher:        fsWatcher,
		scanner:        scanner,
		cfg:            cfg,
		options:        options,
		logger:         logger,
		current:        initial,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start registers the directory tree and begins processing events in a
// background goroutine. Call once.
func (w *Watcher) Start(rootDir string) error {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	w.root = absRoot

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != absRoot && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("setup watches: %w", err)
	}

	w.logger.Info("watcher started", "root", absRoot)

	go w.eventLoop()
	return nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("watcher stopped")
	return err
}

// Report returns a snapshot of the current report.
func (w *Watcher) Report() *report.Report {
	w.reportMu.RLock()
	defer w.reportMu.RUnlock()

	snapshot := *w.current
	snapshot.Files = make([]report.FileAnalysis, len(w.current.Files))
	copy(snapshot.Files, w.current.Files)
	return &snapshot
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if w.shouldIgnore(path) {
		return
	}

	// New directories need a watch of their own; fsnotify is not recursive.
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}

	if !w.matchesInclude(path) {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		w.debounceReanalyze(path)

	case event.Op&fsnotify.Create == fsnotify.Create:
		w.debounceReanalyze(path)

	case event.Op&fsnotify.Remove == fsnotify.Remove:
		w.removeFile(path)

	case event.Op&fsnotify.Rename == fsnotify.Rename:
		w.removeFile(path)
	}
}

// debounceReanalyze schedules a re-analysis after the debounce delay.
// Repeated events within the window collapse into one pass.
func (w *Watcher) debounceReanalyze(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.reanalyzeFile(path)

			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

func (w *Watcher) reanalyzeFile(path string) {
	w.logger.Debug("re-analyzing file", "file", path)

	fa := w.scanner.AnalyzeOne(path)
	if fa == nil {
		return
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	fa.Path = filepath.ToSlash(rel)

	w.reportMu.Lock()
	w.upsertLocked(*fa)
	w.current.GeneratedAt = time.Now().UTC()
	w.reportMu.Unlock()

	w.notify()
}

func (w *Watcher) removeFile(path string) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	relSlash := filepath.ToSlash(rel)

	w.reportMu.Lock()
	removed := false
	files := w.current.Files[:0]
	for _, fa := range w.current.Files {
		if fa.Path == relSlash {
			removed = true
			continue
		}
		files = append(files, fa)
	}
	w.current.Files = files
	if removed {
		w.current.GeneratedAt = time.Now().UTC()
	}
	w.reportMu.Unlock()

	if removed {
		w.logger.Debug("file removed from report", "file", relSlash)
		w.notify()
	}
}

// upsertLocked replaces or inserts an entry, keeping files sorted by path
// so watch-mode output stays as deterministic as a fresh scan.
func (w *Watcher) upsertLocked(fa report.FileAnalysis) {
	files := w.current.Files
	idx := sort.Search(len(files), func(i int) bool { return files[i].Path >= fa.Path })
	if idx < len(files) && files[idx].Path == fa.Path {
		files[idx] = fa
		return
	}
	files = append(files, report.FileAnalysis{})
	copy(files[idx+1:], files[idx:])
	files[idx] = fa
	w.current.Files = files
}

func (w *Watcher) notify() {
	if w.options.OnUpdate == nil {
		return
	}
	w.options.OnUpdate(w.Report())
}

// shouldIgnore applies the scan excludes to an absolute path.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	relSlash := filepath.ToSlash(rel)
	for _, pattern := range w.cfg.Exclude {
		if ok, _ := doublestar.Match(pattern, relSlash); ok {
			return true
		}
	}
	return false
}

// matchesInclude reports whether path is a file the scan config covers.
func (w *Watcher) matchesInclude(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	relSlash := filepath.ToSlash(rel)
	for _, pattern := range w.cfg.Include {
		if ok, _ := doublestar.Match(pattern, relSlash); ok {
			return true
		}
	}
	return false
}
