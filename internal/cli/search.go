package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sightline-dev/sightline/internal/config"
	"github.com/sightline-dev/sightline/internal/search"
)

var (
	searchKind  string
	searchPath  string
	searchLimit int
	searchRoot  string
)

// searchCmd looks up symbols in the latest snapshot.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search captured symbols (functions, classes, components, exports)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDir, err := projectRoot([]string{searchRoot})
		if err != nil {
			return err
		}
		cfg, err := config.NewLoader(rootDir).Load()
		if err != nil {
			return err
		}

		snap, err := loadOrAnalyze(cmd.Context(), cfg, rootDir)
		if err != nil {
			return err
		}

		searcher, err := search.NewSearcher(cmd.Context(), snap.Records)
		if err != nil {
			return err
		}
		defer searcher.Close()

		results, err := searcher.Search(cmd.Context(), args[0], &search.Options{
			Kind:        searchKind,
			PathPattern: searchPath,
			Limit:       searchLimit,
		})
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No matches")
			return nil
		}
		for _, r := range results {
			if r.Line > 0 {
				fmt.Printf("%-10s %-30s %s:%d\n", r.Kind, r.Name, r.Path, r.Line)
			} else {
				fmt.Printf("%-10s %-30s %s\n", r.Kind, r.Name, r.Path)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "restrict to one symbol kind (function, class, component, export, file)")
	searchCmd.Flags().StringVar(&searchPath, "path", "", "wildcard pattern on file paths")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 15, "maximum results")
	searchCmd.Flags().StringVar(&searchRoot, "root", ".", "project root")
	rootCmd.AddCommand(searchCmd)
}
