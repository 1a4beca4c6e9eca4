package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenTestSQLite opens a migrated write/read pool pair on a throwaway
// database under t.TempDir(). The schema matches production (sessions,
// roster, feedback) but no rows are seeded. Tests that don't care about
// the pool split can use writeDB for everything.
func OpenTestSQLite(t *testing.T) (writeDB, readDB *sql.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "talentboard-test.sqlite")

	writeDB, readDB, err := OpenSQLitePair(dbPath, 4)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = readDB.Close()
		_ = writeDB.Close()
	})

	if err := RunMigrations(writeDB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return writeDB, readDB
}
