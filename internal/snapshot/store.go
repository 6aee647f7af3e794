// Package snapshot persists analysis runs. Each run is stored as an
// immutable snapshot (records plus derived graph); re-analysis writes a new
// snapshot instead of mutating the previous one, so concurrent readers
// always see a consistent state.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/maypok86/otter"

	"github.com/sightline-dev/sightline/internal/graph"
	"github.com/sightline-dev/sightline/internal/ir"
)

const (
	cacheCapacity = 64
	cacheTTL      = 10 * time.Minute
)

// Snapshot is one immutable analysis result for a project.
type Snapshot struct {
	ID        string                 `json:"id"`
	ProjectID string                 `json:"project_id"`
	RootDir   string                 `json:"root_dir"`
	CreatedAt time.Time              `json:"created_at"`
	Records   []ir.FileRecord        `json:"records"`
	Graph     *graph.DependencyGraph `json:"graph"`
}

// New creates a snapshot with a fresh id.
func New(projectID, rootDir string, records []ir.FileRecord, g *graph.DependencyGraph) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		RootDir:   rootDir,
		CreatedAt: time.Now().UTC(),
		Records:   records,
		Graph:     g,
	}
}

// Store is a SQLite-backed snapshot store with a TTL cache in front of the
// latest-snapshot lookup.
type Store struct {
	db    *sql.DB
	cache otter.Cache[string, *Snapshot]
}

// Open opens (creating if needed) the snapshot database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	cache, err := otter.MustBuilder[string, *Snapshot](cacheCapacity).
		WithTTL(cacheTTL).
		Build()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build snapshot cache: %w", err)
	}

	return &Store{db: db, cache: cache}, nil
}

// Close releases the database and cache.
func (s *Store) Close() error {
	s.cache.Close()
	return s.db.Close()
}

// createSchema creates the tables inside one transaction.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			root_dir TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL,
			records_json TEXT NOT NULL,
			graph_json TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_project
			ON snapshots(project_id, created_at DESC)`,
	}
	for _, stmt := range ddl {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return tx.Commit()
}

// ProjectID returns the stable id for a project root, creating one on first
// use.
func (s *Store) ProjectID(rootDir string) (string, error) {
	var id string
	err := s.db.QueryRow("SELECT id FROM projects WHERE root_dir = ?", rootDir).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up project: %w", err)
	}

	id = uuid.NewString()
	_, err = s.db.Exec(
		"INSERT INTO projects (id, root_dir, created_at) VALUES (?, ?, ?)",
		id, rootDir, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create project: %w", err)
	}
	return id, nil
}

// Save persists a snapshot and makes it the cached latest for its project.
func (s *Store) Save(snap *Snapshot) error {
	recordsJSON, err := json.Marshal(snap.Records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	graphJSON, err := json.Marshal(snap.Graph)
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO snapshots (id, project_id, created_at, records_json, graph_json) VALUES (?, ?, ?, ?, ?)",
		snap.ID, snap.ProjectID, snap.CreatedAt, string(recordsJSON), string(graphJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.cache.Set(snap.ProjectID, snap)
	return nil
}

// Latest returns the most recent snapshot for a project, or nil when the
// project has none.
func (s *Store) Latest(projectID string) (*Snapshot, error) {
	if snap, ok := s.cache.Get(projectID); ok {
		return snap, nil
	}

	row := s.db.QueryRow(
		"SELECT id, created_at, records_json, graph_json FROM snapshots WHERE project_id = ? ORDER BY created_at DESC, id LIMIT 1",
		projectID,
	)

	snap := &Snapshot{ProjectID: projectID}
	var recordsJSON, graphJSON string
	err := row.Scan(&snap.ID, &snap.CreatedAt, &recordsJSON, &graphJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(recordsJSON), &snap.Records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if err := json.Unmarshal([]byte(graphJSON), &snap.Graph); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	if snap.Graph != nil {
		snap.RootDir = snap.Graph.RootDir
	}

	s.cache.Set(projectID, snap)
	return snap, nil
}
