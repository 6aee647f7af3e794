// Package graph builds the cross-file dependency graph from parsed file
// records and resolves relative import targets to project paths.
package graph

import (
	"time"

	"github.com/dominikbraun/graph"
)

// Node is one file in the dependency graph. ID is the project-relative
// slash path and doubles as the vertex hash.
type Node struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	Type           string `json:"type"`
	FunctionCount  int    `json:"function_count"`
	ClassCount     int    `json:"class_count"`
	ComponentCount int    `json:"component_count"`
	HasFatalError  bool   `json:"has_fatal_error,omitempty"`
}

// Edge is one resolved file-to-file dependency. Duplicate edges between the
// same pair are preserved, one per source reference.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// DependencyGraph is the resolved project graph. Nodes is sorted by ID and
// Edges follows record order, so equal inputs produce equal graphs.
type DependencyGraph struct {
	Nodes       []Node    `json:"nodes"`
	Edges       []Edge    `json:"edges"`
	RootDir     string    `json:"root_dir,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`

	backing graph.Graph[string, *Node]
}

// NodeByID returns the node with the given path, or nil.
func (g *DependencyGraph) NodeByID(id string) *Node {
	if g.backing != nil {
		if n, err := g.backing.Vertex(id); err == nil {
			return n
		}
		return nil
	}
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Dependencies returns the IDs a node points at, deduplicated, in edge order.
func (g *DependencyGraph) Dependencies(id string) []string {
	return g.neighbors(id, func(e Edge) (string, string) { return e.From, e.To })
}

// Dependents returns the IDs that point at a node, deduplicated, in edge
// order.
func (g *DependencyGraph) Dependents(id string) []string {
	return g.neighbors(id, func(e Edge) (string, string) { return e.To, e.From })
}

func (g *DependencyGraph) neighbors(id string, pick func(Edge) (string, string)) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range g.Edges {
		from, to := pick(e)
		if from != id || seen[to] {
			continue
		}
		seen[to] = true
		out = append(out, to)
	}
	return out
}
