package diagram

import (
	"fmt"
	"path"
	"strings"

	"github.com/sightline-dev/sightline/internal/graph"
)

// knownPackageSubstrings marks well-known ecosystem packages during external
// filtering. Substring matching is deliberately approximate.
var knownPackageSubstrings = []string{
	"react", "vue", "angular", "lodash", "axios", "jquery", "webpack", "babel",
}

// nodeShapes maps a file type to its flow-diagram shape delimiters.
var nodeShapes = map[string][2]string{
	"js":  {`["`, `"]`},
	"jsx": {`("`, `")`},
	"ts":  {`[["`, `"]]`},
	"tsx": {`(("`, `"))`},
	"vue": {`{"`, `"}`},
}

// edgeArrows maps a dependency kind to its connector. Unknown kinds fall
// back to a solid arrow.
var edgeArrows = map[string]string{
	"import":        "-->",
	"script":        "-->",
	"require":       "-.->",
	"stylesheet":    "-.->",
	"styleImport":   "-.->",
	"dynamicImport": "==>",
}

// DependencyFlow renders the project graph as a flow diagram: one shaped
// node per file, one arrow per resolved dependency, optionally grouped into
// per-directory subgraphs. External-looking nodes are dropped unless the
// options keep them, and the node set is prefix-truncated at MaxNodes.
func DependencyFlow(g *graph.DependencyGraph, opts Options) string {
	if g == nil || len(g.Nodes) == 0 {
		return flowPlaceholder(opts.Direction, "No project files found", "Run analysis on a source tree first")
	}

	var nodes []graph.Node
	for _, node := range g.Nodes {
		if !opts.IncludeExternal && looksExternal(node.ID) {
			continue
		}
		nodes = append(nodes, node)
		if len(nodes) == opts.MaxNodes {
			break
		}
	}
	if len(nodes) == 0 {
		return flowPlaceholder(opts.Direction, "All files filtered out", "Re-run with external packages included")
	}

	kept := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		kept[node.ID] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", opts.Direction)

	if opts.GroupByDirectory {
		writeGroupedNodes(&b, nodes)
	} else {
		for _, node := range nodes {
			b.WriteString("  " + flowNode(node) + "\n")
		}
	}

	edgeCount := 0
	for _, edge := range g.Edges {
		if !kept[edge.From] || !kept[edge.To] {
			continue
		}
		arrow := edgeArrows[edge.Kind]
		if arrow == "" {
			arrow = "-->"
		}
		if label := SanitizeLabel(edge.Label); label != "" {
			fmt.Fprintf(&b, "  %s %s|%s| %s\n", SanitizeID(edge.From), arrow, label, SanitizeID(edge.To))
		} else {
			fmt.Fprintf(&b, "  %s %s %s\n", SanitizeID(edge.From), arrow, SanitizeID(edge.To))
		}
		edgeCount++
	}

	// A multi-file project with zero resolved edges renders as disconnected
	// boxes; chain a few nodes with dashed cosmetic links instead.
	if edgeCount == 0 && len(nodes) >= 2 {
		b.WriteString("  %% no resolved dependencies; illustrative links only\n")
		links := len(nodes) - 1
		if links > 3 {
			links = 3
		}
		for i := 0; i < links; i++ {
			fmt.Fprintf(&b, "  %s -.-> %s\n", SanitizeID(nodes[i].ID), SanitizeID(nodes[i+1].ID))
		}
	}

	return b.String()
}

// writeGroupedNodes emits nodes wrapped in one subgraph per directory, in
// first-seen order over the sorted node list.
func writeGroupedNodes(b *strings.Builder, nodes []graph.Node) {
	var order []string
	groups := map[string][]graph.Node{}
	for _, node := range nodes {
		dir := path.Dir(node.ID)
		if dir == "." {
			dir = "root"
		}
		if _, seen := groups[dir]; !seen {
			order = append(order, dir)
		}
		groups[dir] = append(groups[dir], node)
	}

	for _, dir := range order {
		fmt.Fprintf(b, "  subgraph %s[\"%s\"]\n", SanitizeID("dir_"+dir), SanitizeLabel(dir))
		for _, node := range groups[dir] {
			b.WriteString("    " + flowNode(node) + "\n")
		}
		b.WriteString("  end\n")
	}
}

// flowNode renders one shaped node statement.
func flowNode(node graph.Node) string {
	shape, ok := nodeShapes[node.Type]
	if !ok {
		shape = [2]string{`["`, `"]`}
	}
	label := SanitizeLabel(node.Label)
	if label == "" {
		label = SanitizeID(node.ID)
	}
	return SanitizeID(node.ID) + shape[0] + label + shape[1]
}

// looksExternal reports whether a node id resembles a third-party package
// rather than a project file: it lives under the dependency cache, has no
// path separator or extension, or contains a well-known package name.
func looksExternal(id string) bool {
	if strings.Contains(id, "node_modules") {
		return true
	}
	if !strings.Contains(id, "/") && !strings.Contains(id, ".") {
		return true
	}
	lower := strings.ToLower(id)
	for _, pkg := range knownPackageSubstrings {
		if strings.Contains(lower, pkg) {
			return true
		}
	}
	return false
}

// flowPlaceholder is the fixed fallback for degenerate flow input.
func flowPlaceholder(direction, first, second string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", direction)
	fmt.Fprintf(&b, "  empty[\"%s\"]\n", SanitizeLabel(first))
	fmt.Fprintf(&b, "  hint[\"%s\"]\n", SanitizeLabel(second))
	b.WriteString("  empty --> hint\n")
	return b.String()
}
