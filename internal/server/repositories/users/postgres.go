package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, reg *models.Registration) (*models.User, error) {
	query :=
		`INSERT INTO users (id, full_name, email, hash, salt, token_version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, 1, $6, $6)
		 RETURNING id, full_name, email, token_version, created_at, updated_at`

	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		reg.ID, reg.FullName, reg.Email, reg.Hash, reg.Salt, reg.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Credentials, error) {
	query :=
		`SELECT id, email, hash, salt, token_version FROM users
		 WHERE email = $1`

	c := &models.Credentials{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Email, &c.Hash, &c.Salt, &c.TokenVersion)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, full_name, email, token_version, created_at, updated_at FROM users
		 WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *PostgresRepository) BumpTokenVersion(ctx context.Context, id string, at time.Time) (*models.User, error) {
	query :=
		`UPDATE users SET token_version = token_version + 1, updated_at = $2
		 WHERE id = $1
		 RETURNING id, full_name, email, token_version, created_at, updated_at`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, at))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}
