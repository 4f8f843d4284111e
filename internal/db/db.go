// Package db writes read-only SQLite snapshots of the application state for
// querying with external tools. The JSON state file stays the source of
// truth; nothing here is read back at startup.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory snapshot database.
const MemoryPath = ":memory:"

// Snapshot files are handed to other tools, so they use a rollback journal
// and never leave -wal or -shm files beside them.
var connPragmas = []string{
	"PRAGMA journal_mode = DELETE",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 2000",
}

// OpenDB opens the snapshot database at path and brings its schema up to
// date. Parent directories are created for file paths.
func OpenDB(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("snapshot path is empty")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	// Each connection to :memory: would see its own empty database.
	conn.SetMaxOpenConns(1)

	for _, pragma := range connPragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if err := Migrate(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate snapshot %s: %w", path, err)
	}
	return conn, nil
}
