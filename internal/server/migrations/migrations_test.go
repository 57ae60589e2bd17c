package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func TestUp_SQLiteCreatesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Up(ctx, db, dbx.DriverSQLite))
	// second run is a no-op
	require.NoError(t, Up(ctx, db, dbx.DriverSQLite))

	for _, table := range []string{"users", "todos", "tasks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestUp_PostgresUsesPostgresTree(t *testing.T) {
	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Up(context.Background(), nil, dbx.DriverPostgres))
	require.Equal(t, "postgres", gotDir)
}

func TestUp_Errors(t *testing.T) {
	require.Error(t, Up(context.Background(), nil, "mysql"))

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	err := Up(context.Background(), nil, dbx.DriverPostgres)
	require.ErrorContains(t, err, "boom")
}
