package state

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens a connection to the SQLite database. Use ":memory:" for an
// in-memory database.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("state store opened", "path", path)
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the tables if they do not exist.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// CreateRun inserts a new running resolution record.
func (s *SQLiteStore) CreateRun() (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Status:    StatusRunning,
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, started_at, status) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt, run.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun finalizes a run with its status and counts.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, errMsg string, targets, facades int) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE runs SET completed_at = ?, status = ?, error = ?, targets = ?, facades = ? WHERE id = ?`,
		now, status, errMsg, targets, facades, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run %s: %w", id, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, completed_at, status, error, targets, facades
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var completed sql.NullTime
		if err := rows.Scan(&r.ID, &r.StartedAt, &completed, &r.Status, &r.Error, &r.Targets, &r.Facades); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// ReplaceTargets swaps the target index for the latest resolution's
// targets, atomically.
func (s *SQLiteStore) ReplaceTargets(targets []TargetRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM targets`); err != nil {
		return fmt.Errorf("failed to clear target index: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO targets (name, kind, deps) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range targets {
		if _, err := stmt.Exec(t.Name, t.Kind, t.Deps); err != nil {
			return fmt.Errorf("failed to index target %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

// ListTargets returns the indexed targets sorted by name.
func (s *SQLiteStore) ListTargets() ([]TargetRow, error) {
	rows, err := s.db.Query(`SELECT name, kind, deps FROM targets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var out []TargetRow
	for rows.Next() {
		var t TargetRow
		if err := rows.Scan(&t.Name, &t.Kind, &t.Deps); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
