package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// ApplySchema executes the bundled migrations for the connection's driver in
// filename order. Every statement is idempotent (IF NOT EXISTS), so it is
// safe to run against an already migrated database.
func ApplySchema(ctx context.Context, dbConn *sqlx.DB) error {
	dir := "migrations/sqlite"
	if dbConn.DriverName() == "postgres" {
		dir = "migrations/postgres"
	}

	names, err := fs.Glob(migrationFiles, dir+"/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		stmt, err := migrationFiles.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := dbConn.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}
