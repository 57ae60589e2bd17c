// Package repomanager vends repository implementations for the configured
// database backend and applies its schema migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a DBTX, so the same service code
// runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}

// New returns the RepositoryManager for a dbx driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case dbx.DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	case dbx.DriverSQLite:
		return NewSQLiteRepositoryManager(), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}
