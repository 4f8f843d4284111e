package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/notestudio/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory snapshot database that lives until
// the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "open in-memory snapshot db")
	t.Cleanup(func() { _ = database.Close() })
	return database
}
