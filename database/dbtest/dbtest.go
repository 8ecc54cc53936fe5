// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"context"
	"testing"

	"todo-service/database"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// New returns an in-memory SQLite database with the schema applied. The
// database is closed when the test finishes.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	dbConn, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every connection to :memory: is a distinct database
	dbConn.SetMaxOpenConns(1)
	t.Cleanup(func() { dbConn.Close() })

	if err := database.ApplySchema(context.Background(), dbConn); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return dbConn
}
