// Package storage persists run history and best scores in SQLite. The
// schema is versioned with goose migrations embedded in the binary, and
// the pure-Go modernc.org/sqlite driver keeps the build free of CGO.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteTimeLayout is how CURRENT_TIMESTAMP comes back when scanned as text.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store wraps the database handle. *sql.DB pools connections, so one
// Store is shared by every SSH session.
type Store struct {
	db *sql.DB
}

// Open opens the database at dbPath, creating it and its parent
// directories when missing, and applies pending migrations. A leading
// "~" expands to the home directory.
func Open(dbPath string) (*Store, error) {
	return OpenContext(context.Background(), dbPath)
}

// OpenContext is Open with a context bounding the migration run.
func OpenContext(ctx context.Context, dbPath string) (*Store, error) {
	path, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// parseTime accepts the driver's time.Time or a SQLite text timestamp.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
