// Package analyzer walks a project tree and parses every eligible source
// file into FileRecords. Per-file failures never abort a run; the only hard
// failure is a missing or unreadable root.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sightline-dev/sightline/internal/analyzer/parsers"
	"github.com/sightline-dev/sightline/internal/ir"
)

// ErrRootNotFound is the single caller-visible fatal error class: the walk
// root does not exist or cannot be read.
var ErrRootNotFound = errors.New("analysis root not found")

// ProgressReporter receives progress callbacks during a run.
type ProgressReporter interface {
	OnDiscoveryComplete(totalFiles int)
	OnFileProcessed(path string)
	OnComplete(stats *ir.AnalysisStats)
}

// NoOpProgressReporter ignores all progress events.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryComplete(int)      {}
func (NoOpProgressReporter) OnFileProcessed(string)       {}
func (NoOpProgressReporter) OnComplete(*ir.AnalysisStats) {}

// Analyzer batch-parses a directory tree.
type Analyzer struct {
	rootDir   string
	discovery *Discovery
	workers   int
	progress  ProgressReporter
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProgress configures progress reporting.
func WithProgress(progress ProgressReporter) Option {
	return func(a *Analyzer) {
		a.progress = progress
	}
}

// WithWorkers sets the parse worker count (default: GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithIgnorePatterns overrides the default ignore globs.
func WithIgnorePatterns(patterns []string) Option {
	return func(a *Analyzer) {
		d, err := NewDiscovery(a.rootDir, patterns)
		if err != nil {
			log.Printf("Warning: invalid ignore patterns, keeping defaults: %v\n", err)
			return
		}
		a.discovery = d
	}
}

// New creates an analyzer for the given root directory.
func New(rootDir string, opts ...Option) (*Analyzer, error) {
	discovery, err := NewDiscovery(rootDir, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery: %w", err)
	}

	a := &Analyzer{
		rootDir:   rootDir,
		discovery: discovery,
		workers:   runtime.GOMAXPROCS(0),
		progress:  NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ParseDirectory enumerates eligible files under the root and parses each
// one. Files are parsed concurrently; results are aggregated sorted by path
// so the same input tree always produces the same record order. Per-file
// errors are captured as FatalError records instead of propagating.
func (a *Analyzer) ParseDirectory(ctx context.Context) ([]ir.FileRecord, error) {
	startTime := time.Now()

	info, err := os.Stat(a.rootDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, a.rootDir)
	}

	files, err := a.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}
	a.progress.OnDiscoveryComplete(len(files))

	records := make([]ir.FileRecord, len(files))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := a.workers
	if workers > len(files) {
		workers = len(files)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = *a.parseOne(files[i])
				a.progress.OnFileProcessed(files[i])
			}
		}()
	}

	done := ctx.Done()
	canceled := false
feed:
	for i := range files {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case <-done:
			canceled = true
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if canceled {
		// Abandoned run: partial records are discarded, nothing to preserve.
		return nil, ctx.Err()
	}

	// Workers wrote by index over the sorted file list, so the order is
	// already deterministic; keep the sort as a guard for future callers.
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })

	stats := ir.CollectStats(records)
	stats.Elapsed = time.Since(startTime)
	a.progress.OnComplete(stats)

	return records, nil
}

// parseOne reads and parses a single file, converting every failure mode
// (I/O error, unsupported type, parser panic) into a record instead of an
// error.
func (a *Analyzer) parseOne(relPath string) (rec *ir.FileRecord) {
	ext := filepath.Ext(relPath)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: parser panic on %s: %v\n", relPath, r)
			rec = ir.NewFatalRecord(relPath, ext, fmt.Sprintf("parser panic: %v", r))
		}
	}()

	content, err := os.ReadFile(filepath.Join(a.rootDir, filepath.FromSlash(relPath)))
	if err != nil {
		log.Printf("Warning: failed to read %s: %v\n", relPath, err)
		return ir.NewFatalRecord(relPath, ext, err.Error())
	}

	rec, err = parsers.Parse(relPath, content)
	if err != nil {
		return ir.NewFatalRecord(relPath, ext, err.Error())
	}
	return rec
}
