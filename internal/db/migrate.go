package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate creates the snapshot schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		row_id      INTEGER PRIMARY KEY,
		id          TEXT NOT NULL DEFAULT '',
		id_kind     TEXT NOT NULL CHECK(id_kind IN ('string','number','none')),
		position    INTEGER NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT '',
		pinned      INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS notes (
		row_id      INTEGER PRIMARY KEY,
		project_row INTEGER NOT NULL REFERENCES projects(row_id) ON DELETE CASCADE,
		id          TEXT NOT NULL DEFAULT '',
		id_kind     TEXT NOT NULL CHECK(id_kind IN ('string','number','none')),
		position    INTEGER NOT NULL,
		title       TEXT NOT NULL,
		body        TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_project ON notes(project_row)`,

	`CREATE TABLE IF NOT EXISTS steps (
		row_id      INTEGER PRIMARY KEY,
		owner_kind  TEXT NOT NULL CHECK(owner_kind IN ('project','note')),
		project_row INTEGER NOT NULL REFERENCES projects(row_id) ON DELETE CASCADE,
		note_row    INTEGER REFERENCES notes(row_id) ON DELETE CASCADE,
		id          TEXT NOT NULL DEFAULT '',
		id_kind     TEXT NOT NULL CHECK(id_kind IN ('string','number','none')),
		position    INTEGER NOT NULL,
		text        TEXT NOT NULL,
		done        INTEGER NOT NULL DEFAULT 0,
		CHECK((owner_kind = 'note') = (note_row IS NOT NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_steps_project ON steps(project_row)`,
	`CREATE INDEX IF NOT EXISTS idx_steps_note ON steps(note_row)`,

	// Values are stored as their JSON encoding.
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		id          TEXT PRIMARY KEY DEFAULT 'current',
		written_at  TEXT NOT NULL
	)`,

	`ALTER TABLE snapshot_meta ADD COLUMN app_id TEXT NOT NULL DEFAULT ''`,
}
