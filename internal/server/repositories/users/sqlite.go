package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
//
// Timestamps are read back with a plain select: SQLite reports no declared
// type for RETURNING columns, so the driver would hand them out as text.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, reg *models.Registration) (*models.User, error) {
	query := `insert into users (id, full_name, email, hash, salt, token_version, created_at, updated_at)
		values (?, ?, ?, ?, ?, 1, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		reg.ID, reg.FullName, reg.Email, reg.Hash, reg.Salt, reg.CreatedAt, reg.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return r.FindByID(ctx, reg.ID)
}

func (r *SQLiteRepository) FindByEmail(ctx context.Context, email string) (*models.Credentials, error) {
	query := `select id, email, hash, salt, token_version from users where email = ?`

	c := &models.Credentials{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Email, &c.Hash, &c.Salt, &c.TokenVersion)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `select id, full_name, email, token_version, created_at, updated_at from users where id = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// BumpTokenVersion increments in a single statement and keeps the version
// that statement produced, even if another bump lands before the profile
// is read back.
func (r *SQLiteRepository) BumpTokenVersion(ctx context.Context, id string, at time.Time) (*models.User, error) {
	query := `update users set token_version = token_version + 1, updated_at = ?
		where id = ?
		returning token_version`

	var version int64
	if err := r.db.QueryRowContext(ctx, query, at, id).Scan(&version); err != nil {
		return nil, mapError(err)
	}

	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	u.TokenVersion = version
	return u, nil
}
