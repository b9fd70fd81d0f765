// Package sqlite provides the SQLite-backed audit sink.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vk/modorder/internal/audit"
	"github.com/vk/modorder/internal/audit/sqlite/migrations"
	"github.com/vk/modorder/internal/sqlitemigrate"
)

// Store persists discovery run records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite audit store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordRun inserts one audit record. Recording the same run ID again is a
// no-op, which makes the operation safe to retry.
func (s *Store) RecordRun(ctx context.Context, rec audit.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return &audit.PersistenceWriteError{RunID: rec.RunID, Err: err}
	}
	if s == nil || s.sqlDB == nil {
		return &audit.PersistenceWriteError{RunID: rec.RunID, Err: fmt.Errorf("storage is not configured")}
	}
	if strings.TrimSpace(rec.RunID) == "" {
		return &audit.PersistenceWriteError{RunID: rec.RunID, Err: fmt.Errorf("run id is required")}
	}

	orderJSON, err := json.Marshal(rec.Order)
	if err != nil {
		return &audit.PersistenceWriteError{RunID: rec.RunID, Err: fmt.Errorf("marshal order: %w", err)}
	}
	errorsJSON, err := json.Marshal(rec.Errors)
	if err != nil {
		return &audit.PersistenceWriteError{RunID: rec.RunID, Err: fmt.Errorf("marshal errors: %w", err)}
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO discovery_runs (
		   run_id,
		   started_at,
		   module_count,
		   error_count,
		   cycle_count,
		   import_order,
		   errors
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO NOTHING`,
		rec.RunID,
		rec.StartedAt,
		rec.ModuleCount,
		rec.ErrorCount,
		rec.CycleCount,
		string(orderJSON),
		string(errorsJSON),
	)
	if err != nil {
		return &audit.PersistenceWriteError{RunID: rec.RunID, Err: err}
	}
	return nil
}

// Run reads one stored record back by run ID.
func (s *Store) Run(ctx context.Context, runID string) (audit.RunRecord, error) {
	var rec audit.RunRecord
	if s == nil || s.sqlDB == nil {
		return rec, fmt.Errorf("storage is not configured")
	}

	var orderJSON, errorsJSON string
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT run_id, started_at, module_count, error_count, cycle_count, import_order, errors
		   FROM discovery_runs WHERE run_id = ?`,
		runID,
	).Scan(&rec.RunID, &rec.StartedAt, &rec.ModuleCount, &rec.ErrorCount, &rec.CycleCount, &orderJSON, &errorsJSON)
	if err != nil {
		return rec, fmt.Errorf("read run %s: %w", runID, err)
	}

	if err := json.Unmarshal([]byte(orderJSON), &rec.Order); err != nil {
		return rec, fmt.Errorf("unmarshal order for run %s: %w", runID, err)
	}
	if err := json.Unmarshal([]byte(errorsJSON), &rec.Errors); err != nil {
		return rec, fmt.Errorf("unmarshal errors for run %s: %w", runID, err)
	}
	return rec, nil
}

// RunCount returns the number of stored discovery runs.
func (s *Store) RunCount(ctx context.Context) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(1) FROM discovery_runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

var _ audit.Sink = (*Store)(nil)
