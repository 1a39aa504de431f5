// Package store handles SQLite persistence of load and export history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/insidash/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrUnknownLoad is returned when an export references a missing load.
var ErrUnknownLoad = errors.New("unknown load id")

// Store wraps SQLite access for history data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS loads (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			warning_count INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			load_id TEXT NOT NULL DEFAULT '',
			path TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_loads_started_at ON loads(started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_exports_load_id ON exports(load_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordLoad stores one load attempt and returns it with its assigned id.
func (s *Store) RecordLoad(ctx context.Context, rec model.LoadRecord) (model.LoadRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = rec.StartedAt
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO loads (id, source, started_at, finished_at, row_count, warning_count, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Source,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
		rec.RowCount,
		rec.WarningCount,
		rec.Error,
	)
	if err != nil {
		return model.LoadRecord{}, fmt.Errorf("failed to record load: %w", err)
	}
	return rec, nil
}

// RecordExport stores one export. A non-empty LoadID must reference a
// recorded load.
func (s *Store) RecordExport(ctx context.Context, rec model.ExportRecord) (model.ExportRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.ExportRecord{}, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if rec.LoadID != "" {
		var n int
		if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM loads WHERE id = ?`, rec.LoadID).Scan(&n); err != nil {
			return model.ExportRecord{}, err
		}
		if n == 0 {
			err = fmt.Errorf("%w: %s", ErrUnknownLoad, rec.LoadID)
			return model.ExportRecord{}, err
		}
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO exports (id, load_id, path, row_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID,
		rec.LoadID,
		rec.Path,
		rec.RowCount,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return model.ExportRecord{}, fmt.Errorf("failed to record export: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return model.ExportRecord{}, err
	}
	return rec, nil
}

// ListLoads returns the most recent loads first, with their export counts.
// A non-positive limit returns every load.
func (s *Store) ListLoads(ctx context.Context, limit int) ([]model.LoadRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT l.id, l.source, l.started_at, l.finished_at, l.row_count, l.warning_count, l.error,
		(SELECT COUNT(*) FROM exports e WHERE e.load_id = l.id) AS export_count
	FROM loads l
	ORDER BY l.started_at DESC
	LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LoadRecord
	for rows.Next() {
		var rec model.LoadRecord
		var startedAt, finishedAt string
		if err := rows.Scan(&rec.ID, &rec.Source, &startedAt, &finishedAt, &rec.RowCount, &rec.WarningCount, &rec.Error, &rec.ExportCount); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListExports returns exports of one load, oldest first.
func (s *Store) ListExports(ctx context.Context, loadID string) ([]model.ExportRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, load_id, path, row_count, created_at FROM exports WHERE load_id = ? ORDER BY created_at ASC`,
		loadID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ExportRecord
	for rows.Next() {
		var rec model.ExportRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.LoadID, &rec.Path, &rec.RowCount, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
