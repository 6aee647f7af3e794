package graph

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dominikbraun/graph"

	"github.com/sightline-dev/sightline/internal/ir"
)

// scriptExtensions is the probe order for extensionless import targets.
var scriptExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// Builder resolves file records into a dependency graph.
type Builder struct {
	rootDir string
}

// NewBuilder creates a graph builder. rootDir is recorded as graph metadata
// only; resolution works entirely on project-relative paths.
func NewBuilder(rootDir string) *Builder {
	return &Builder{rootDir: rootDir}
}

// Build constructs the graph: one node per record unconditionally (fatal
// records included, so the node count always equals the record count), then
// one edge per internal dependency whose target resolves to a known record.
// Unresolvable targets are dropped silently.
func (b *Builder) Build(records []ir.FileRecord) *DependencyGraph {
	g := &DependencyGraph{
		Nodes:       make([]Node, 0, len(records)),
		Edges:       []Edge{},
		RootDir:     b.rootDir,
		GeneratedAt: time.Now().UTC(),
		backing: graph.New(func(n *Node) string {
			return n.ID
		}, graph.Directed()),
	}

	known := make(map[string]bool, len(records))
	for i := range records {
		rec := &records[i]
		known[rec.Path] = true
		node := Node{
			ID:             rec.Path,
			Label:          path.Base(rec.Path),
			Type:           strings.TrimPrefix(rec.Extension, "."),
			FunctionCount:  len(rec.Functions),
			ClassCount:     len(rec.Classes),
			ComponentCount: len(rec.Components),
			HasFatalError:  rec.FatalError != "",
		}
		g.Nodes = append(g.Nodes, node)
	}

	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	for i := range g.Nodes {
		_ = g.backing.AddVertex(&g.Nodes[i])
	}

	for i := range records {
		rec := &records[i]
		for _, dep := range rec.Dependencies {
			if dep.IsExternal {
				continue
			}
			target, ok := resolveTarget(rec.Path, dep.Target, known)
			if !ok {
				continue
			}
			edge := Edge{
				From:  rec.Path,
				To:    target,
				Kind:  string(dep.Kind),
				Label: dep.Target,
			}
			g.Edges = append(g.Edges, edge)
			// The backing graph collapses parallel edges; the Edges slice is
			// the full multiset.
			err := g.backing.AddEdge(edge.From, edge.To, graph.EdgeAttribute("kind", edge.Kind))
			if err != nil && err != graph.ErrEdgeAlreadyExists {
				continue
			}
		}
	}

	return g
}

// resolveTarget maps a relative import target to a known record path. Probe
// order: the literal path, the literal path with each script extension
// appended, then an index file with each script extension inside the target
// directory. The first hit wins.
func resolveTarget(ownerPath, target string, known map[string]bool) (string, bool) {
	base := path.Clean(path.Join(path.Dir(ownerPath), target))
	if base == "." || strings.HasPrefix(base, "../") {
		return "", false
	}

	if known[base] {
		return base, true
	}
	for _, ext := range scriptExtensions {
		if candidate := base + ext; known[candidate] {
			return candidate, true
		}
	}
	for _, ext := range scriptExtensions {
		if candidate := path.Join(base, "index"+ext); known[candidate] {
			return candidate, true
		}
	}
	return "", false
}
