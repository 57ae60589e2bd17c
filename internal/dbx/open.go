package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// sqlitePragmas are appended to file DSNs that carry no query string.
const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

// Open opens and pings a database for the given backend.
//
// Postgres goes through the pgx stdlib driver. SQLite goes through
// modernc.org/sqlite with foreign keys enforced and a single open
// connection, which serializes writers and keeps :memory: databases
// alive for the lifetime of the pool.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
	case DriverSQLite:
		db, err = sql.Open("sqlite", SQLiteDSN(dsn))
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

// SQLiteDSN adds the connection pragmas to a SQLite DSN unless the caller
// already supplied its own parameters.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	if dsn == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"
	}
	return dsn + "?" + sqlitePragmas
}
