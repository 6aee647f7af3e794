package analyzer

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sightline-dev/sightline/internal/analyzer/parsers"
	"github.com/sightline-dev/sightline/internal/ir"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher re-analyzes a project when its source files change. Change events
// are debounced so a burst of writes triggers one run; each run produces a
// fresh record list, never a mutation of the previous one.
type Watcher struct {
	analyzer *Analyzer
	watcher  *fsnotify.Watcher
	debounce time.Duration

	dirty   bool
	dirtyMu sync.Mutex

	timer   *time.Timer
	timerMu sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewWatcher creates a watcher over the analyzer's root. Ignored directories
// (per the analyzer's discovery patterns) are not registered.
func NewWatcher(a *Analyzer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		analyzer: a,
		watcher:  fsw,
		debounce: defaultDebounce,
		doneCh:   make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(a.rootDir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start watches until the context is canceled, invoking onUpdate with each
// fresh analysis result. Failed re-analysis runs are logged and skipped.
func (w *Watcher) Start(ctx context.Context, onUpdate func(records []ir.FileRecord)) {
	go w.run(ctx, onUpdate)
}

// Stop closes the underlying watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *Watcher) run(ctx context.Context, onUpdate func(records []ir.FileRecord)) {
	defer close(w.doneCh)

	reanalyzeCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v\n", event.Name, err)
					}
				}
			}

			if !parsers.IsSupported(filepath.Ext(event.Name)) {
				continue
			}

			w.dirtyMu.Lock()
			w.dirty = true
			w.dirtyMu.Unlock()
			w.resetTimer(reanalyzeCh)

		case <-reanalyzeCh:
			w.dirtyMu.Lock()
			pending := w.dirty
			w.dirty = false
			w.dirtyMu.Unlock()
			if !pending {
				continue
			}

			records, err := w.analyzer.ParseDirectory(ctx)
			if err != nil {
				log.Printf("Warning: re-analysis failed: %v\n", err)
				continue
			}
			onUpdate(records)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v\n", err)
		}
	}
}

// addDirectoriesRecursively registers dir and its non-ignored subdirectories.
func (w *Watcher) addDirectoriesRecursively(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return fs.SkipDir
		}
		if !entry.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(w.analyzer.rootDir, path)
		if err == nil && relPath != "." && w.analyzer.discovery.shouldIgnore(filepath.ToSlash(relPath)) {
			return fs.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) resetTimer(reanalyzeCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		if !w.timer.Stop() {
			select {
			case <-w.timer.C:
			default:
			}
		}
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case reanalyzeCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
