package todos

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

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`INSERT INTO todos (id, user_id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING id, user_id, name, created_at, updated_at`

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, todo.ID, todo.UserID, todo.Name, todo.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	query :=
		`SELECT id, user_id, name, created_at, updated_at FROM todos
		 WHERE id = $1`

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, page models.PageRequest) ([]models.Todo, int, error) {
	countQuery :=
		`SELECT COUNT(*) FROM todos
		 WHERE user_id = $1 AND name ILIKE '%' || $2 || '%' ESCAPE '\'`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, userID, dbx.EscapeLike(page.Search)).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query :=
		`SELECT id, user_id, name, created_at, updated_at FROM todos
		 WHERE user_id = $1 AND name ILIKE '%' || $2 || '%' ESCAPE '\'
		 ORDER BY created_at DESC, id
		 LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, userID, dbx.EscapeLike(page.Search), page.Size, page.Offset())
	if err != nil {
		return nil, 0, mapError(err)
	}
	items, err := collectTodos(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) Rename(ctx context.Context, id, name string, at time.Time) (*models.Todo, error) {
	query :=
		`UPDATE todos SET name = $2, updated_at = $3
		 WHERE id = $1
		 RETURNING id, user_id, name, created_at, updated_at`

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, id, name, at))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}
