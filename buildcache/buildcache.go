// Package buildcache records completed manifest builds in SQLite so a
// build host can skip rebuilding an unchanged input tree and inspect
// recent build history.
//
// The cache is advisory: losing it costs one rebuild, nothing more.
package buildcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	id            TEXT PRIMARY KEY,
	fingerprint   TEXT NOT NULL,
	item_count    INTEGER NOT NULL,
	manifest_path TEXT NOT NULL,
	annotation    TEXT NOT NULL DEFAULT '',
	duration_ms   INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS builds_created_at ON builds(created_at);
`

// Record is one completed build.
type Record struct {
	// ID identifies the build run. Save assigns a fresh NewBuildID
	// when empty.
	ID string

	// Fingerprint is the input-tree digest the build consumed.
	Fingerprint string

	// ItemCount is the number of manifest entries produced.
	ItemCount int

	// ManifestPath is where the manifest was written.
	ManifestPath string

	// Annotation is the build label, when one was configured.
	Annotation string

	// Duration is how long the build took.
	Duration time.Duration

	// CreatedAt is when the build finished. Save assigns time.Now()
	// when zero.
	CreatedAt time.Time
}

// NewBuildID returns a time-sortable unique build ID (UUIDv7).
func NewBuildID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Store is a handle to one build cache database.
type Store struct {
	db *sql.DB
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts one build record.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = NewBuildID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (id, fingerprint, item_count, manifest_path, annotation, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Fingerprint, rec.ItemCount, rec.ManifestPath, rec.Annotation,
		rec.Duration.Milliseconds(), rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("buildcache: save build %s: %w", rec.ID, err)
	}
	return nil
}

// LastFingerprint returns the fingerprint of the most recent build, or
// "" when the cache is empty.
func (s *Store) LastFingerprint(ctx context.Context) (string, error) {
	var fp string
	err := s.db.QueryRowContext(ctx,
		`SELECT fingerprint FROM builds ORDER BY rowid DESC LIMIT 1`).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("buildcache: last fingerprint: %w", err)
	}
	return fp, nil
}

// History returns up to limit builds, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fingerprint, item_count, manifest_path, annotation, duration_ms, created_at
		 FROM builds ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("buildcache: history: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var durationMS int64
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Fingerprint, &rec.ItemCount,
			&rec.ManifestPath, &rec.Annotation, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("buildcache: scan: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("buildcache: history: %w", err)
	}
	return recs, nil
}
