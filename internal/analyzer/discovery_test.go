package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for File Discovery:
// - Return only files with supported extensions
// - Skip default-ignored directories (node_modules, dist, .git, ...)
// - Honor custom ignore patterns
// - Return sorted project-relative slash paths
// - Reject invalid glob patterns at construction

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("// placeholder\n"), 0o644))
	}
}

func TestDiscoverFiles_SupportedExtensionsOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"src/app.js",
		"src/types.ts",
		"src/Card.vue",
		"README.md",
		"Makefile",
	)

	d, err := NewDiscovery(root, nil)
	require.NoError(t, err)

	files, err := d.DiscoverFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/Card.vue", "src/app.js", "src/types.ts"}, files)
}

func TestDiscoverFiles_DefaultIgnores(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"index.js",
		"node_modules/react/index.js",
		"dist/bundle.js",
		"coverage/report.js",
	)

	d, err := NewDiscovery(root, nil)
	require.NoError(t, err)

	files, err := d.DiscoverFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"index.js"}, files)
}

func TestDiscoverFiles_CustomIgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "keep/a.js", "drop/b.js")

	d, err := NewDiscovery(root, []string{"drop/**"})
	require.NoError(t, err)

	files, err := d.DiscoverFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"keep/a.js"}, files)
}

func TestNewDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewDiscovery(t.TempDir(), []string{"[unclosed"})
	assert.Error(t, err)
}
