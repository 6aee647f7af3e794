package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sightline-dev/sightline/internal/analyzer"
	"github.com/sightline-dev/sightline/internal/config"
	"github.com/sightline-dev/sightline/internal/ir"
	"github.com/sightline-dev/sightline/internal/snapshot"
)

// watchCmd keeps the snapshot fresh while files change.
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-analyze the project whenever source files change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDir, err := projectRoot(args)
		if err != nil {
			return err
		}
		cfg, err := config.NewLoader(rootDir).Load()
		if err != nil {
			return err
		}

		// Initial run so the watcher always starts from a stored snapshot.
		if _, err := runAnalysis(cmd.Context(), cfg, rootDir, NewCLIProgressReporter(quiet)); err != nil {
			return err
		}

		store, err := snapshot.Open(config.DatabasePath(cfg, rootDir))
		if err != nil {
			return err
		}
		defer store.Close()

		projectID, err := store.ProjectID(rootDir)
		if err != nil {
			return err
		}

		a, err := newAnalyzer(cfg, rootDir, analyzer.NoOpProgressReporter{})
		if err != nil {
			return err
		}
		watcher, err := analyzer.NewWatcher(a)
		if err != nil {
			return err
		}
		defer watcher.Stop()

		log.Printf("Watching %s for changes (Ctrl+C to stop)\n", rootDir)
		watcher.Start(cmd.Context(), func(records []ir.FileRecord) {
			snap := snapshot.New(projectID, rootDir, records, rebuildGraph(rootDir, records))
			if err := store.Save(snap); err != nil {
				log.Printf("Warning: failed to save snapshot: %v\n", err)
				return
			}
			stats := ir.CollectStats(records)
			log.Printf("Re-analyzed %d files (%d functions, %d components)\n",
				stats.FilesProcessed, stats.FunctionCount, stats.ComponentCount)
		})

		<-cmd.Context().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
