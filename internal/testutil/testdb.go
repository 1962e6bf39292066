package testutil

import (
	"database/sql"
	"testing"

	"github.com/kkurihara/planboard/internal/db"
)

// NewTestDB opens an in-memory SQLite database with the full planboard
// schema migrated, closed when the test finishes. Subtree and project
// teardown lean on ON DELETE CASCADE, so the fixture refuses to hand out a
// database where foreign keys are not enforced.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})

	var fk int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("checking foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Fatal("foreign keys disabled: cascade deletes would silently leak wbs_nodes rows")
	}
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
