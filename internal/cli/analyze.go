package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sightline-dev/sightline/internal/config"
	"github.com/sightline-dev/sightline/internal/ir"
)

var analyzeJSON bool

// analyzeCmd parses a project tree and stores a fresh snapshot.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Parse a project and store an analysis snapshot",
	Long: `Analyze walks the project tree, parses every supported source file
(.js, .jsx, .ts, .tsx, .html, .css, .scss, .vue), builds the dependency
graph, and stores the result as a new snapshot under .sightline/.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDir, err := projectRoot(args)
		if err != nil {
			return err
		}

		cfg, err := config.NewLoader(rootDir).Load()
		if err != nil {
			return err
		}

		snap, err := runAnalysis(cmd.Context(), cfg, rootDir, NewCLIProgressReporter(quiet))
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap.Records)
		}

		stats := ir.CollectStats(snap.Records)
		fmt.Printf("Snapshot %s: %d files, %d nodes, %d edges\n",
			snap.ID, stats.FilesProcessed, len(snap.Graph.Nodes), len(snap.Graph.Edges))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print file records as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
