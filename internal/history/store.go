package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	video_path TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	model TEXT NOT NULL,
	task TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT '',
	detected_language TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	subtitle_path TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// Record captures the outcome of one pipeline invocation.
type Record struct {
	ID               string
	StartedAt        time.Time
	VideoPath        string
	OutputDir        string
	Model            string
	Task             string
	Language         string
	DetectedLanguage string
	Outcome          string
	SubtitlePath     string
	Duration         time.Duration
}

// Store persists run records in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append inserts a completed run record.
func (s *Store) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, started_at, video_path, output_dir, model, task, language, detected_language, outcome, subtitle_path, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.VideoPath,
		rec.OutputDir,
		rec.Model,
		rec.Task,
		rec.Language,
		rec.DetectedLanguage,
		rec.Outcome,
		rec.SubtitlePath,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, video_path, output_dir, model, task, language, detected_language, outcome, subtitle_path, duration_ms
FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query run records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var startedAt string
		var durationMS int64
		if err := rows.Scan(
			&rec.ID,
			&startedAt,
			&rec.VideoPath,
			&rec.OutputDir,
			&rec.Model,
			&rec.Task,
			&rec.Language,
			&rec.DetectedLanguage,
			&rec.Outcome,
			&rec.SubtitlePath,
			&durationMS,
		); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, startedAt); parseErr == nil {
			rec.StartedAt = ts
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}
