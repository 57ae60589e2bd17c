// Package tasks persists tasks. Deletion is soft: a deleted task keeps its
// row with deleted_at set and is invisible to every lookup.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository stores tasks. Lookups that miss return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	ListByTodo(ctx context.Context, todoID string, page models.PageRequest) ([]models.Task, int, error)
	Update(ctx context.Context, id, description string, dueDate, at time.Time) (*models.Task, error)
	// Complete moves a pending task to completed. A task that is no
	// longer pending yields common.ErrAlreadyCompleted.
	Complete(ctx context.Context, id string, at time.Time) (*models.Task, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	var status string
	if err := row.Scan(&t.ID, &t.TodoID, &t.Description, &t.DueDate, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = models.TaskStatus(status)
	return t, nil
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
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
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
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
