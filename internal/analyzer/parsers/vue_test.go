package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightline-dev/sightline/internal/ir"
)

// Test Plan for Single-File Component Parsing:
// - Split script, template, and style blocks and merge their output
// - Shift merged line numbers by each block's offset in the file
// - Only dependencies propagate from the template block
// - Multiple style blocks all contribute
// - A missing block is simply skipped

func TestParseComposite_AllBlocks(t *testing.T) {
	t.Parallel()

	src := []byte(`<template>
  <div><script src="./widget.js"></script></div>
</template>

<script>
import api from './api';

function Loader() { return null; }
export default Loader;
</script>

<style>
@import "./base.css";
.card { padding: 1rem; }
</style>
`)
	rec, err := Parse("Card.vue", src)
	require.NoError(t, err)

	targets := map[string]ir.DependencyKind{}
	for _, dep := range rec.Dependencies {
		targets[dep.Target] = dep.Kind
	}
	assert.Equal(t, ir.DepImport, targets["./api"])
	assert.Equal(t, ir.DepScript, targets["./widget.js"])
	assert.Equal(t, ir.DepStyleImport, targets["./base.css"])

	require.Len(t, rec.Functions, 1)
	assert.Equal(t, "Loader", rec.Functions[0].Name)

	require.Len(t, rec.Exports, 1)
	assert.Equal(t, ir.ExportDefault, rec.Exports[0].Kind)
}

func TestParseComposite_LineOffsets(t *testing.T) {
	t.Parallel()

	src := []byte("<template>\n  <div/>\n</template>\n<script>\nimport x from './x';\n</script>\n")
	rec, err := Parse("Offset.vue", src)
	require.NoError(t, err)

	require.Len(t, rec.Dependencies, 1)
	// The import sits on line 5 of the file, line 2 of the script block.
	assert.Equal(t, 5, rec.Dependencies[0].Line)
}

func TestParseComposite_ScriptOnly(t *testing.T) {
	t.Parallel()

	src := []byte("<script>\nconst n = 1;\nexport const answer = 42;\n</script>\n")
	rec, err := Parse("Bare.vue", src)
	require.NoError(t, err)
	assert.Empty(t, rec.Dependencies)
	require.Len(t, rec.Exports, 1)
	assert.Equal(t, "answer", rec.Exports[0].Name)
}

func TestParseComposite_MultipleStyleBlocks(t *testing.T) {
	t.Parallel()

	src := []byte("<style>\n@import './a.css';\n</style>\n<style scoped>\n@import './b.css';\n</style>\n")
	rec, err := Parse("Styles.vue", src)
	require.NoError(t, err)
	require.Len(t, rec.Dependencies, 2)
	assert.Equal(t, "./a.css", rec.Dependencies[0].Target)
	assert.Equal(t, "./b.css", rec.Dependencies[1].Target)
}
