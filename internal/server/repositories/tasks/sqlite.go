package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `insert into tasks (id, todo_id, description, due_date, status, created_at, updated_at)
		values (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.TodoID, task.Description, task.DueDate, string(task.Status), task.CreatedAt, task.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return r.FindByID(ctx, task.ID)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `select ` + taskColumns + ` from tasks where id = ? and deleted_at is null`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *SQLiteRepository) ListByTodo(ctx context.Context, todoID string, page models.PageRequest) ([]models.Task, int, error) {
	countQuery := `select count(*) from tasks
		where todo_id = ? and deleted_at is null and description like '%' || ? || '%' escape '\'`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, todoID, dbx.EscapeLike(page.Search)).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := `select ` + taskColumns + ` from tasks
		where todo_id = ? and deleted_at is null and description like '%' || ? || '%' escape '\'
		order by created_at desc, id
		limit ? offset ?`

	rows, err := r.db.QueryContext(ctx, query, todoID, dbx.EscapeLike(page.Search), page.Size, page.Offset())
	if err != nil {
		return nil, 0, mapError(err)
	}
	items, err := collectTasks(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id, description string, dueDate, at time.Time) (*models.Task, error) {
	query := `update tasks set description = ?, due_date = ?, updated_at = ?
		where id = ? and deleted_at is null`

	res, err := r.db.ExecContext(ctx, query, description, dueDate, at, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := checkAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *SQLiteRepository) Complete(ctx context.Context, id string, at time.Time) (*models.Task, error) {
	query := `update tasks set status = 'completed', updated_at = ?
		where id = ? and status = 'pending' and deleted_at is null`

	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return nil, mapError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, mapError(err)
	} else if n == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, common.ErrAlreadyCompleted
	}
	return r.FindByID(ctx, id)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `update tasks set deleted_at = ? where id = ? and deleted_at is null`, at, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}
