// Package sqlitestore persists segments in a local SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/user/sceneline/pkg/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS segments (
	id TEXT PRIMARY KEY,
	video_id TEXT NOT NULL,
	start_ms INTEGER NOT NULL,
	end_ms INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	creation_index INTEGER NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_segments_video ON segments(video_id, creation_index);
`

// Store implements ports.SegmentStore on a SQLite database file.
type Store struct {
	conn   *sql.DB
	logger ports.Logger
}

// New opens or creates the database at dbPath and ensures the schema.
func New(dbPath string, logger ports.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// modernc.org/sqlite works best with a single writer connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	if logger != nil {
		logger.Debug("Opened segment store at %s", dbPath)
	}

	return &Store{conn: conn, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Conn exposes the underlying connection, mainly for tests.
func (s *Store) Conn() *sql.DB {
	return s.conn
}

// CreateSegment persists a new segment and returns its id. The creation
// index is assigned per video in insertion order.
func (s *Store) CreateSegment(ctx context.Context, videoID string, startMs, endMs int64, description string) (string, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var index int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(creation_index) + 1, 0) FROM segments WHERE video_id = ?`,
		videoID,
	).Scan(&index)
	if err != nil {
		return "", fmt.Errorf("next creation index: %w", err)
	}

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO segments (id, video_id, start_ms, end_ms, description, creation_index) VALUES (?, ?, ?, ?, ?, ?)`,
		id, videoID, startMs, endMs, description, index,
	)
	if err != nil {
		return "", fmt.Errorf("insert segment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// UpdateSegment applies the non-nil fields to an existing segment.
func (s *Store) UpdateSegment(ctx context.Context, id string, fields ports.SegmentFields) error {
	var (
		sets []string
		args []any
	)
	if fields.StartMs != nil {
		sets = append(sets, "start_ms = ?")
		args = append(args, *fields.StartMs)
	}
	if fields.EndMs != nil {
		sets = append(sets, "end_ms = ?")
		args = append(args, *fields.EndMs)
	}
	if fields.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *fields.Description)
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE segments SET "
	for i, set := range sets {
		if i > 0 {
			query += ", "
		}
		query += set
	}
	query += " WHERE id = ?"
	args = append(args, id)

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update segment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("segment not found: %s", id)
	}
	return nil
}

// DeleteSegment removes a segment.
func (s *Store) DeleteSegment(ctx context.Context, id string) error {
	result, err := s.conn.ExecContext(ctx, `DELETE FROM segments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete segment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("segment not found: %s", id)
	}
	return nil
}

// ListSegments returns all segments for a video in creation order.
func (s *Store) ListSegments(ctx context.Context, videoID string) ([]ports.SegmentRecord, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, video_id, start_ms, end_ms, description, creation_index FROM segments WHERE video_id = ? ORDER BY creation_index`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	defer rows.Close()

	var records []ports.SegmentRecord
	for rows.Next() {
		var rec ports.SegmentRecord
		if err := rows.Scan(&rec.ID, &rec.VideoID, &rec.StartMs, &rec.EndMs, &rec.Description, &rec.CreationIndex); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}
	return records, nil
}

// Ensure Store implements ports.SegmentStore
var _ ports.SegmentStore = (*Store)(nil)
