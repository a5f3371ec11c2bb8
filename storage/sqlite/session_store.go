// Package sqlite persists track points between runs so an unexported
// session can be recovered after a crash or restart.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/soocke/frame-tracker-go/domain/points"
)

// SessionStore is an sqlite-backed recovery store keyed by video.
type SessionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, logger *slog.Logger) (*SessionStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	s := &SessionStore{db: db, logger: logger}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// VideoKey derives the store key of a video file.
func VideoKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// SaveAll replaces every stored point of videoKey with pts in one transaction.
func (s *SessionStore) SaveAll(ctx context.Context, videoKey string, fps float64, numObjects int, pts []points.TrackPoint) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM track_points WHERE video_key = ?`, videoKey); err != nil {
		return fmt.Errorf("clear points: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO track_points (id, video_key, timestamp_ms, object_id, x, y)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (video_key, id) DO UPDATE SET
			timestamp_ms = excluded.timestamp_ms,
			object_id = excluded.object_id,
			x = excluded.x,
			y = excluded.y,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, p := range pts {
		id := p.ID
		if id == "" {
			id = points.PointID(p.TimestampMs, p.ObjectID)
		}
		if _, err := stmt.ExecContext(ctx, id, videoKey, p.TimestampMs, p.ObjectID, p.X, p.Y); err != nil {
			return fmt.Errorf("insert point %s: %w", id, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (video_key, fps, num_objects) VALUES (?, ?, ?)
		ON CONFLICT (video_key) DO UPDATE SET
			fps = excluded.fps,
			num_objects = excluded.num_objects,
			saved_at = CURRENT_TIMESTAMP`, videoKey, fps, numObjects); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("session saved", "video", videoKey, "points", len(pts))
	}
	return nil
}

// LoadAll returns the stored points of videoKey ordered by timestamp and object.
func (s *SessionStore) LoadAll(ctx context.Context, videoKey string) ([]points.TrackPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp_ms, object_id, x, y
		FROM track_points
		WHERE video_key = ?
		ORDER BY timestamp_ms, object_id`, videoKey)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	defer rows.Close()
	var out []points.TrackPoint
	for rows.Next() {
		var p points.TrackPoint
		if err := rows.Scan(&p.ID, &p.TimestampMs, &p.ObjectID, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
	}
	return out, nil
}

// NumObjects returns the object count saved with videoKey, or 0 when none was saved.
func (s *SessionStore) NumObjects(ctx context.Context, videoKey string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT num_objects FROM sessions WHERE video_key = ?`, videoKey).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query session: %w", err)
	}
	return n, nil
}

// Clear forgets everything stored for videoKey.
func (s *SessionStore) Clear(ctx context.Context, videoKey string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM track_points WHERE video_key = ?`, videoKey); err != nil {
		return fmt.Errorf("clear points: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE video_key = ?`, videoKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SessionStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
