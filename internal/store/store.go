package store

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// NewInMemory creates a Store backed by an in-memory database, for tests.
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would otherwise see its own empty database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS feature_selections (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		calendar BOOLEAN NOT NULL DEFAULT 0,
		journal BOOLEAN NOT NULL DEFAULT 0,
		ai_workout BOOLEAN NOT NULL DEFAULT 0,
		sleep BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		sentiment REAL,
		positivity_tag TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		scheduled_date DATETIME NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS calendar_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		due_date DATETIME NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS analyzer_findings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		severity INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		request_json TEXT NOT NULL,
		plan_json TEXT NOT NULL,
		artifact_path TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS usage_meter (
		day TEXT PRIMARY KEY,
		units INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_journal_user_created ON journal_entries(user_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_workouts_user ON workout_logs(user_id);
	CREATE INDEX IF NOT EXISTS idx_calendar_user ON calendar_items(user_id);
	CREATE INDEX IF NOT EXISTS idx_findings_user_created ON analyzer_findings(user_id, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}
