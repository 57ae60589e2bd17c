// Package migrations embeds the goose schema migrations, one tree per
// database dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var mu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies all pending migrations for the given dbx driver.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	var dialect, dir string
	switch driver {
	case dbx.DriverPostgres:
		dialect, dir = "pgx", "postgres"
	case dbx.DriverSQLite:
		dialect, dir = "sqlite3", "sqlite"
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
