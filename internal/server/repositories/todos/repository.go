// Package todos persists todo lists.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository stores todo lists. Lookups that miss return
// common.ErrorNotFound; a name already used by the same owner returns
// common.ErrConflict.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	FindByID(ctx context.Context, id string) (*models.Todo, error)
	ListByUser(ctx context.Context, userID string, page models.PageRequest) ([]models.Todo, int, error)
	Rename(ctx context.Context, id, name string, at time.Time) (*models.Todo, error)
	Delete(ctx context.Context, id string) error
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	t := &models.Todo{}
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func collectTodos(rows *sql.Rows) ([]models.Todo, error) {
	defer rows.Close()

	var result []models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, mapError(err)
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case dbx.IsUniqueViolation(err):
		return common.ErrConflict
	}
	return fmt.Errorf("db error: %w", err)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
