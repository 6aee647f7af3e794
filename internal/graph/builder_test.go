package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightline-dev/sightline/internal/ir"
)

// Test Plan for the Graph Builder:
// - One node per record, including fatal and dependency-free records
// - Every edge endpoint exists in the node set
// - Extension probing resolves ./b to b.jsx when only b.jsx exists
// - index.<ext> probing resolves directory imports
// - Literal match wins over extension probing
// - External references never produce edges
// - Unresolvable references are dropped silently
// - Duplicate references keep duplicate edges
// - Edge labels carry the original target text

func record(path string, deps ...ir.DependencyRef) ir.FileRecord {
	rec := ir.NewFileRecord(path, extOf(path))
	rec.Dependencies = deps
	return *rec
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}

func dep(target string) ir.DependencyRef {
	return ir.DependencyRef{
		Kind:       ir.DepImport,
		Target:     target,
		IsExternal: target[0] != '.',
	}
}

func TestBuild_NodePerRecord(t *testing.T) {
	t.Parallel()

	records := []ir.FileRecord{
		record("src/a.js"),
		record("src/b.js"),
		*ir.NewFatalRecord("src/broken.js", ".js", "unreadable"),
	}

	g := NewBuilder("/proj").Build(records)
	require.Len(t, g.Nodes, len(records))

	broken := g.NodeByID("src/broken.js")
	require.NotNil(t, broken)
	assert.True(t, broken.HasFatalError)
	assert.Equal(t, "broken.js", broken.Label)
	assert.Equal(t, "js", broken.Type)
}

func TestBuild_EdgeEndpointsExist(t *testing.T) {
	t.Parallel()

	records := []ir.FileRecord{
		record("src/a.js", dep("./b"), dep("./missing"), dep("react")),
		record("src/b.js"),
	}

	g := NewBuilder("/proj").Build(records)
	for _, edge := range g.Edges {
		assert.NotNil(t, g.NodeByID(edge.From), "edge from %s", edge.From)
		assert.NotNil(t, g.NodeByID(edge.To), "edge to %s", edge.To)
	}
}

func TestBuild_ExtensionProbeOrder(t *testing.T) {
	t.Parallel()

	// Only b.jsx exists; ./b must resolve to it.
	records := []ir.FileRecord{
		record("src/a.js", dep("./b")),
		record("src/b.jsx"),
	}

	g := NewBuilder("/proj").Build(records)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "src/a.js", g.Edges[0].From)
	assert.Equal(t, "src/b.jsx", g.Edges[0].To)
}

func TestBuild_LiteralBeatsProbing(t *testing.T) {
	t.Parallel()

	records := []ir.FileRecord{
		record("src/a.js", dep("./styles.css")),
		record("src/styles.css"),
	}

	g := NewBuilder("/proj").Build(records)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "src/styles.css", g.Edges[0].To)
}

func TestBuild_IndexResolution(t *testing.T) {
	t.Parallel()

	records := []ir.FileRecord{
		record("src/a.js", dep("./widgets")),
		record("src/widgets/index.ts"),
	}

	g := NewBuilder("/proj").Build(records)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "src/widgets/index.ts", g.Edges[0].To)
}

func TestBuild_SingleFileBeatsIndex(t *testing.T) {
	t.Parallel()

	// Both widgets.js and widgets/index.js exist; the single-file form has
	// probe priority.
	records := []ir.FileRecord{
		record("src/a.js", dep("./widgets")),
		record("src/widgets.js"),
		record("src/widgets/index.js"),
	}

	g := NewBuilder("/proj").Build(records)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "src/widgets.js", g.Edges[0].To)
}

func TestBuild_ExternalAndUnresolvableDropped(t *testing.T) {
	t.Parallel()

	records := []ir.FileRecord{
		record("src/a.js", dep("react"), dep("./nowhere")),
		record("src/b.js"),
	}

	g := NewBuilder("/proj").Build(records)
	assert.Empty(t, g.Edges)
	assert.Len(t, g.Nodes, 2)
}

func TestBuild_DuplicateEdgesKept(t *testing.T) {
	t.Parallel()

	records := []ir.FileRecord{
		record("src/a.js", dep("./b"), dep("./b.js")),
		record("src/b.js"),
	}

	g := NewBuilder("/proj").Build(records)
	assert.Len(t, g.Edges, 2)
}

func TestBuild_EdgeLabelAndKind(t *testing.T) {
	t.Parallel()

	records := []ir.FileRecord{
		record("src/a.js", ir.DependencyRef{Kind: ir.DepRequire, Target: "./b"}),
		record("src/b.js"),
	}

	g := NewBuilder("/proj").Build(records)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "require", g.Edges[0].Kind)
	assert.Equal(t, "./b", g.Edges[0].Label)
}

func TestBuild_ParentTraversalOutsideRoot(t *testing.T) {
	t.Parallel()

	// ../shared escapes the record set's root namespace; no edge.
	records := []ir.FileRecord{
		record("a.js", dep("../shared")),
		record("shared.js"),
	}

	g := NewBuilder("/proj").Build(records)
	assert.Empty(t, g.Edges)
}

func TestDependenciesAndDependents(t *testing.T) {
	t.Parallel()

	records := []ir.FileRecord{
		record("src/a.js", dep("./b"), dep("./c")),
		record("src/b.js", dep("./c")),
		record("src/c.js"),
	}

	g := NewBuilder("/proj").Build(records)
	assert.Equal(t, []string{"src/b.js", "src/c.js"}, g.Dependencies("src/a.js"))
	assert.Equal(t, []string{"src/a.js", "src/b.js"}, g.Dependents("src/c.js"))
}
