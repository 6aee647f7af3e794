package cli

import (
	"context"
	"fmt"

	"github.com/sightline-dev/sightline/internal/analyzer"
	"github.com/sightline-dev/sightline/internal/config"
	"github.com/sightline-dev/sightline/internal/graph"
	"github.com/sightline-dev/sightline/internal/ir"
	"github.com/sightline-dev/sightline/internal/snapshot"
)

// newAnalyzer builds an analyzer from config for the given root.
func newAnalyzer(cfg *config.Config, rootDir string, progress analyzer.ProgressReporter) (*analyzer.Analyzer, error) {
	opts := []analyzer.Option{
		analyzer.WithProgress(progress),
		analyzer.WithIgnorePatterns(cfg.Paths.Ignore),
	}
	if cfg.Analysis.Workers > 0 {
		opts = append(opts, analyzer.WithWorkers(cfg.Analysis.Workers))
	}
	return analyzer.New(rootDir, opts...)
}

// runAnalysis parses the tree, builds the graph, and persists the result as
// a new snapshot.
func runAnalysis(ctx context.Context, cfg *config.Config, rootDir string, progress analyzer.ProgressReporter) (*snapshot.Snapshot, error) {
	a, err := newAnalyzer(cfg, rootDir, progress)
	if err != nil {
		return nil, err
	}

	records, err := a.ParseDirectory(ctx)
	if err != nil {
		return nil, err
	}

	g := graph.NewBuilder(rootDir).Build(records)

	store, err := snapshot.Open(config.DatabasePath(cfg, rootDir))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	projectID, err := store.ProjectID(rootDir)
	if err != nil {
		return nil, err
	}

	snap := snapshot.New(projectID, rootDir, records, g)
	if err := store.Save(snap); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return snap, nil
}

// loadOrAnalyze returns the latest stored snapshot for the root, running a
// fresh analysis when none exists.
func loadOrAnalyze(ctx context.Context, cfg *config.Config, rootDir string) (*snapshot.Snapshot, error) {
	store, err := snapshot.Open(config.DatabasePath(cfg, rootDir))
	if err == nil {
		defer store.Close()
		projectID, perr := store.ProjectID(rootDir)
		if perr == nil {
			if snap, lerr := store.Latest(projectID); lerr == nil && snap != nil {
				return snap, nil
			}
		}
	}
	return runAnalysis(ctx, cfg, rootDir, NewCLIProgressReporter(quiet))
}

// rebuildGraph regenerates the derived graph when a stored snapshot predates
// it (or for consistency checks). Records are never mutated.
func rebuildGraph(rootDir string, records []ir.FileRecord) *graph.DependencyGraph {
	return graph.NewBuilder(rootDir).Build(records)
}
