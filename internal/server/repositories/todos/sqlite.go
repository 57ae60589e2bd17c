package todos

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// LIKE is case-insensitive for ASCII in SQLite, matching ILIKE on Postgres.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `insert into todos (id, user_id, name, created_at, updated_at) values (?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, todo.ID, todo.UserID, todo.Name, todo.CreatedAt, todo.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return r.FindByID(ctx, todo.ID)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	query := `select id, user_id, name, created_at, updated_at from todos where id = ?`

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string, page models.PageRequest) ([]models.Todo, int, error) {
	countQuery := `select count(*) from todos where user_id = ? and name like '%' || ? || '%' escape '\'`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, userID, dbx.EscapeLike(page.Search)).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := `select id, user_id, name, created_at, updated_at from todos
		where user_id = ? and name like '%' || ? || '%' escape '\'
		order by created_at desc, id
		limit ? offset ?`

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

func (r *SQLiteRepository) Rename(ctx context.Context, id, name string, at time.Time) (*models.Todo, error) {
	res, err := r.db.ExecContext(ctx, `update todos set name = ?, updated_at = ? where id = ?`, name, at, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := checkAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from todos where id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}
