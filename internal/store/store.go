// Package store persists analysis runs to a local SQLite database under
// the workspace .docktor directory, so past reports can be listed and
// compared.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"docktor/internal/analyzer"
	"docktor/internal/logging"
)

// Run is one recorded analysis.
type Run struct {
	ID                string
	CreatedAt         time.Time
	DockerfilePath    string
	SecurityScore     int
	OptimizationScore int
	Issues            []analyzer.Issue
	Metrics           analyzer.Metrics
	Optimized         string
}

// Store wraps the SQLite history database.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// Open opens (or creates) the history database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	path := filepath.Join(dir, "history.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreError("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreError("failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	logging.Store("history store opened: %s", path)
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			dockerfile_path TEXT NOT NULL,
			security_score INTEGER NOT NULL,
			optimization_score INTEGER NOT NULL,
			issues_json TEXT NOT NULL,
			metrics_json TEXT NOT NULL,
			optimized TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records an analysis result and returns the new run ID.
func (s *Store) Save(dockerfilePath string, res *analyzer.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issuesJSON, err := json.Marshal(res.Issues)
	if err != nil {
		return "", fmt.Errorf("failed to encode issues: %w", err)
	}
	metricsJSON, err := json.Marshal(res.Metrics)
	if err != nil {
		return "", fmt.Errorf("failed to encode metrics: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO runs (id, created_at, dockerfile_path, security_score, optimization_score, issues_json, metrics_json, optimized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC(), dockerfilePath, res.SecurityScore, res.OptimizationScore,
		string(issuesJSON), string(metricsJSON), res.OptimizedDockerfile)
	if err != nil {
		logging.StoreError("failed to save run: %v", err)
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	logging.Store("saved run %s for %s", id, dockerfilePath)
	return id, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, dockerfile_path, security_score, optimization_score, issues_json, metrics_json, optimized
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns a single run by ID.
func (s *Store) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, created_at, dockerfile_path, security_score, optimization_score, issues_json, metrics_json, optimized
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var issuesJSON, metricsJSON string
	err := row.Scan(&run.ID, &run.CreatedAt, &run.DockerfilePath,
		&run.SecurityScore, &run.OptimizationScore, &issuesJSON, &metricsJSON, &run.Optimized)
	if err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(issuesJSON), &run.Issues); err != nil {
		return Run{}, fmt.Errorf("failed to decode issues for run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(metricsJSON), &run.Metrics); err != nil {
		return Run{}, fmt.Errorf("failed to decode metrics for run %s: %w", run.ID, err)
	}
	return run, nil
}
