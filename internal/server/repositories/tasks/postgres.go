package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

const taskColumns = `id, todo_id, description, due_date, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (id, todo_id, description, due_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query,
		task.ID, task.TodoID, task.Description, task.DueDate, string(task.Status), task.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE id = $1 AND deleted_at IS NULL`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByTodo(ctx context.Context, todoID string, page models.PageRequest) ([]models.Task, int, error) {
	countQuery :=
		`SELECT COUNT(*) FROM tasks
		 WHERE todo_id = $1 AND deleted_at IS NULL AND description ILIKE '%' || $2 || '%' ESCAPE '\'`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, todoID, dbx.EscapeLike(page.Search)).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE todo_id = $1 AND deleted_at IS NULL AND description ILIKE '%' || $2 || '%' ESCAPE '\'
		 ORDER BY created_at DESC, id
		 LIMIT $3 OFFSET $4`

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

func (r *PostgresRepository) Update(ctx context.Context, id, description string, dueDate, at time.Time) (*models.Task, error) {
	query :=
		`UPDATE tasks SET description = $2, due_date = $3, updated_at = $4
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, description, dueDate, at))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) Complete(ctx context.Context, id string, at time.Time) (*models.Task, error) {
	query :=
		`UPDATE tasks SET status = 'completed', updated_at = $2
		 WHERE id = $1 AND status = 'pending' AND deleted_at IS NULL
		 RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, at))
	if err == nil {
		return t, nil
	}

	err = mapError(err)
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	// either gone or not pending any more
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, common.ErrAlreadyCompleted
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query :=
		`UPDATE tasks SET deleted_at = $2
		 WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}
