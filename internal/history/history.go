// Package history persists a summary of each sort run so the CLI's
// `history` subcommand can list and inspect past runs independently
// of the in-memory Report a single call returns.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/filesort/filesort/internal/sorter"
)

// Run is one persisted row: a source path, its time window, the
// scanned/matched counts and a JSON blob of per-action counts.
type Run struct {
	ID         int64     `db:"id"`
	Source     string    `db:"source"`
	StartedAt  time.Time `db:"started_at"`
	EndedAt    time.Time `db:"ended_at"`
	ScannedN   int       `db:"scanned_n"`
	MatchedN   int       `db:"matched_n"`
	PerAction  string    `db:"per_action_json"`
	Cancelled  bool      `db:"cancelled"`
	DryRun     bool      `db:"dry_run"`
}

// Store wraps a sqlite3-backed *sqlx.DB.
type Store struct {
	db *sqlx.DB
}

// Open creates the database file and schema if needed and returns a
// ready Store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	schema := `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		scanned_n INTEGER NOT NULL,
		matched_n INTEGER NOT NULL,
		per_action_json TEXT NOT NULL,
		cancelled BOOLEAN NOT NULL,
		dry_run BOOLEAN NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &Store{db: db}, nil
}

// Record persists a completed Report. The core Sort call never
// touches the database itself; this is called by whichever
// collaborator (CLI, cron job) chooses to keep history.
func (s *Store) Record(source string, started, ended time.Time, report *sorter.Report) (int64, error) {
	perAction, err := json.Marshal(report.PerAction)
	if err != nil {
		return 0, fmt.Errorf("marshal per-action counts: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (source, started_at, ended_at, scanned_n, matched_n, per_action_json, cancelled, dry_run)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		source, started, ended, report.ScannedN, report.MatchedN, string(perAction), report.Cancelled, report.DryRun,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent runs, newest first, bounded by limit.
func (s *Store) List(limit int) ([]Run, error) {
	var runs []Run
	err := s.db.Select(&runs, `SELECT * FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns a single run by id.
func (s *Store) Get(id int64) (*Run, error) {
	var r Run
	if err := s.db.Get(&r, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("get run %d: %w", id, err)
	}
	return &r, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
