package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/recipeway/recipeway/internal/db"
	_ "modernc.org/sqlite"
)

// NewTestDB opens an in-memory sqlite database with the state schema
// applied. Shared cache keeps all pool connections on the same in-memory
// database; the test name keeps parallel tests apart.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_busy_timeout=5000"
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return conn
}
