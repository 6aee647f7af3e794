package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sightline-dev/sightline/internal/config"
	"github.com/sightline-dev/sightline/internal/diagram"
)

var (
	diagramKind      string
	diagramDirection string
	diagramExternal  bool
	diagramMaxNodes  int
	diagramNoGroup   bool
	diagramOutput    string
)

// diagramCmd projects the latest snapshot into diagram text.
var diagramCmd = &cobra.Command{
	Use:   "diagram [path]",
	Short: "Render an analysis snapshot as diagram text",
	Long: `Diagram projects the latest snapshot (running analysis first if none
exists) into one of the diagram kinds: dependency-flow, component,
function-call, class, sequence. Invalid output is replaced by a safe
fallback diagram.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := diagram.ParseKind(diagramKind)
		if err != nil {
			return err
		}

		rootDir, err := projectRoot(args)
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
		if snap.Graph == nil {
			snap.Graph = rebuildGraph(rootDir, snap.Records)
		}

		opts := cfg.DiagramOptions()
		if cmd.Flags().Changed("direction") {
			opts.Direction = diagramDirection
		}
		if cmd.Flags().Changed("include-external") {
			opts.IncludeExternal = diagramExternal
		}
		if cmd.Flags().Changed("max-nodes") {
			opts.MaxNodes = diagramMaxNodes
		}
		if diagramNoGroup {
			opts.GroupByDirectory = false
		}

		text, err := diagram.Project(kind, diagram.Source{
			Graph:   snap.Graph,
			Records: snap.Records,
		}, opts)
		if err != nil {
			return err
		}

		if result := diagram.Validate(text); !result.IsValid {
			log.Printf("Warning: generated %s diagram failed validation: %v\n", kind, result.Errors)
			text, err = diagram.Project(kind, diagram.Source{}, opts)
			if err != nil {
				return err
			}
		}

		if diagramOutput != "" {
			return os.WriteFile(diagramOutput, []byte(text), 0o644)
		}
		fmt.Print(text)
		return nil
	},
}

func init() {
	diagramCmd.Flags().StringVarP(&diagramKind, "kind", "k", string(diagram.KindDependencyFlow), "diagram kind")
	diagramCmd.Flags().StringVarP(&diagramDirection, "direction", "d", "LR", "flow direction (LR, RL, TD, TB, BT)")
	diagramCmd.Flags().BoolVar(&diagramExternal, "include-external", false, "keep external-looking nodes")
	diagramCmd.Flags().IntVar(&diagramMaxNodes, "max-nodes", 50, "node cap for flow diagrams")
	diagramCmd.Flags().BoolVar(&diagramNoGroup, "no-group", false, "disable per-directory subgraphs")
	diagramCmd.Flags().StringVarP(&diagramOutput, "output", "o", "", "write diagram to file instead of stdout")
	rootCmd.AddCommand(diagramCmd)
}
