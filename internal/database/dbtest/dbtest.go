// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/database"
	"github.com/jmoiron/sqlx"
)

// New returns a fresh, fully migrated in-memory SQLite database that is
// closed when the test finishes.
func New(tb testing.TB) *sqlx.DB {
	tb.Helper()

	db, err := database.New(database.SQLite, ":memory:")
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		tb.Fatalf("migrate test database: %v", err)
	}
	return db
}
