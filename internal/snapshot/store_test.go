package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightline-dev/sightline/internal/graph"
	"github.com/sightline-dev/sightline/internal/ir"
)

// Test Plan for the Snapshot Store:
// - ProjectID is stable per root and distinct across roots
// - Save then Latest round-trips records and graph
// - Latest returns nil for a project with no snapshots
// - A newer snapshot supersedes the previous one
// - Reopening the store reads persisted snapshots (cache miss path)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot(projectID string, paths ...string) *Snapshot {
	records := make([]ir.FileRecord, 0, len(paths))
	for _, p := range paths {
		rec := ir.NewFileRecord(p, filepath.Ext(p))
		rec.Functions = []ir.FunctionRef{{Name: "fn", Kind: ir.FuncDeclaration, Line: 1}}
		records = append(records, *rec)
	}
	g := graph.NewBuilder("/proj").Build(records)
	return New(projectID, "/proj", records, g)
}

func TestProjectID_StablePerRoot(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	first, err := store.ProjectID("/proj/a")
	require.NoError(t, err)
	second, err := store.ProjectID("/proj/a")
	require.NoError(t, err)
	other, err := store.ProjectID("/proj/b")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestSaveAndLatest_RoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	projectID, err := store.ProjectID("/proj")
	require.NoError(t, err)

	snap := testSnapshot(projectID, "src/a.js", "src/b.js")
	require.NoError(t, store.Save(snap))

	loaded, err := store.Latest(projectID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, snap.ID, loaded.ID)
	require.Len(t, loaded.Records, 2)
	assert.Equal(t, "src/a.js", loaded.Records[0].Path)
	assert.Len(t, loaded.Graph.Nodes, 2)
}

func TestLatest_NoSnapshots(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	projectID, err := store.ProjectID("/empty")
	require.NoError(t, err)

	snap, err := store.Latest(projectID)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSave_NewerSnapshotWins(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	projectID, err := store.ProjectID("/proj")
	require.NoError(t, err)

	older := testSnapshot(projectID, "src/a.js")
	require.NoError(t, store.Save(older))

	newer := testSnapshot(projectID, "src/a.js", "src/b.js")
	newer.CreatedAt = older.CreatedAt.Add(1)
	require.NoError(t, store.Save(newer))

	loaded, err := store.Latest(projectID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, newer.ID, loaded.ID)
}

func TestReopen_ReadsPersistedSnapshot(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := Open(dbPath)
	require.NoError(t, err)

	projectID, err := store.ProjectID("/proj")
	require.NoError(t, err)

	snap := testSnapshot(projectID, "src/a.js")
	require.NoError(t, store.Save(snap))
	require.NoError(t, store.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Latest(projectID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snap.ID, loaded.ID)
	assert.Equal(t, "/proj", loaded.RootDir)
}
