// Package prefs persists small per-visitor preferences in SQLite. Visitor ids
// are salted and hashed before they touch the database.
package prefs

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (or creates) the database at path and makes sure the schema exists.
func Open(path, salt string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}
	// SQLite serialises writers anyway; one connection also keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, salt: salt, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	createTable := `
	CREATE TABLE IF NOT EXISTS preferences (
		visitor TEXT NOT NULL,  -- hashed visitor id
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (visitor, name)
	)`
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create preferences table: %w", err)
	}

	createIndex := `CREATE INDEX IF NOT EXISTS idx_preferences_updated ON preferences (updated_at)`
	if _, err := s.db.ExecContext(ctx, createIndex); err != nil {
		return fmt.Errorf("create preferences index: %w", err)
	}
	return nil
}

// hashVisitor keeps raw visitor ids out of storage (consistent per id).
func (s *Store) hashVisitor(visitor string) string {
	hash := sha256.New()
	hash.Write([]byte(visitor + s.salt))
	return hex.EncodeToString(hash.Sum(nil))[:32]
}

// Get returns the stored value and whether one exists.
func (s *Store) Get(ctx context.Context, visitor, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE visitor = ? AND name = ?`,
		s.hashVisitor(visitor), name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %q: %w", name, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, visitor, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor, name, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (visitor, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.hashVisitor(visitor), name, value, s.now().Unix())
	if err != nil {
		return fmt.Errorf("set preference %q: %w", name, err)
	}
	return nil
}

// Cleanup drops preferences nobody has touched for maxAge.
func (s *Store) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).Unix()
	result, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup preferences: %w", err)
	}

	rowsDeleted, _ := result.RowsAffected()
	if rowsDeleted > 0 {
		log.Printf("Preference cleanup: removed %d records older than %v", rowsDeleted, maxAge)
	}
	return rowsDeleted, nil
}

// Count reports how many visitors have stored a given preference value.
func (s *Store) Count(ctx context.Context, name, value string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM preferences WHERE name = ? AND value = ?`, name, value,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count preference %q: %w", name, err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
