package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/thejerf/abtime"
)

// MinDueDateLead is how far ahead of now a due date must be.
const MinDueDateLead = time.Minute

// TaskUpdate is a partial change to a task; nil fields are left as they are.
type TaskUpdate struct {
	Description *string
	DueDate     *time.Time
}

// TaskService manages tasks. Every task it returns carries a code computed
// from the service clock at the time of the call.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       abtime.AbstractTime
	logger      logging.Logger
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, clock abtime.AbstractTime, logger logging.Logger) *TaskService {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &TaskService{db: db, repomanager: m, clock: clock, logger: logger}
}

// Create adds a pending task to todo, which the caller has already
// authorized.
func (s *TaskService) Create(ctx context.Context, todo *models.Todo, description string, dueDate time.Time) (_ *models.Task, err error) {
	ctx, span := startSpan(ctx, "TaskService.Create")
	defer func() { endSpan(span, err) }()

	now := s.clock.Now().UTC()
	if err := checkDueDate(dueDate, now); err != nil {
		return nil, err
	}

	task, err := s.repomanager.Tasks(s.db).Create(ctx, &models.Task{
		ID:          uuid.NewString(),
		TodoID:      todo.ID,
		Description: description,
		DueDate:     dueDate.UTC(),
		Status:      models.TaskPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, s.mapError(ctx, "error creating task", err)
	}
	task.Classify(now)
	return task, nil
}

// ListByTodo returns one page of the live tasks of todo.
func (s *TaskService) ListByTodo(ctx context.Context, todo *models.Todo, page models.PageRequest) (_ models.Page[models.Task], err error) {
	ctx, span := startSpan(ctx, "TaskService.ListByTodo")
	defer func() { endSpan(span, err) }()

	page = page.Normalize()
	items, total, err := s.repomanager.Tasks(s.db).ListByTodo(ctx, todo.ID, page)
	if err != nil {
		return models.Page[models.Task]{}, s.mapError(ctx, "error listing tasks", err)
	}

	now := s.clock.Now()
	for i := range items {
		items[i].Classify(now)
	}
	return models.NewPage(items, page, total), nil
}

// FindByID loads a live task regardless of owner.
func (s *TaskService) FindByID(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(ctx, "error loading task", err)
	}
	task.Classify(s.clock.Now())
	return task, nil
}

// ResolveOwner reports the owner of the todo list task belongs to. A task
// whose list is gone resolves to common.ErrorNotFound.
func (s *TaskService) ResolveOwner(ctx context.Context, task *models.Task) (string, error) {
	todo, err := s.repomanager.Todos(s.db).FindByID(ctx, task.TodoID)
	if err != nil {
		return "", s.mapError(ctx, "error loading parent todo", err)
	}
	return todo.UserID, nil
}

// Update applies a partial change. A new due date is checked the same way
// as on Create.
func (s *TaskService) Update(ctx context.Context, task *models.Task, upd TaskUpdate) (_ *models.Task, err error) {
	ctx, span := startSpan(ctx, "TaskService.Update")
	defer func() { endSpan(span, err) }()

	now := s.clock.Now().UTC()

	description, dueDate := task.Description, task.DueDate
	if upd.Description != nil {
		description = *upd.Description
	}
	if upd.DueDate != nil {
		if err := checkDueDate(*upd.DueDate, now); err != nil {
			return nil, err
		}
		dueDate = upd.DueDate.UTC()
	}

	updated, err := s.repomanager.Tasks(s.db).Update(ctx, task.ID, description, dueDate, now)
	if err != nil {
		return nil, s.mapError(ctx, "error updating task", err)
	}
	updated.Classify(now)
	return updated, nil
}

// Complete marks task completed. Completing twice yields
// common.ErrAlreadyCompleted.
func (s *TaskService) Complete(ctx context.Context, task *models.Task) (_ *models.Task, err error) {
	ctx, span := startSpan(ctx, "TaskService.Complete")
	defer func() { endSpan(span, err) }()

	if task.Status == models.TaskCompleted {
		return nil, common.ErrAlreadyCompleted
	}

	now := s.clock.Now().UTC()
	updated, err := s.repomanager.Tasks(s.db).Complete(ctx, task.ID, now)
	if err != nil {
		return nil, s.mapError(ctx, "error completing task", err)
	}
	updated.Classify(now)
	return updated, nil
}

// Delete soft-deletes task.
func (s *TaskService) Delete(ctx context.Context, task *models.Task) (err error) {
	ctx, span := startSpan(ctx, "TaskService.Delete")
	defer func() { endSpan(span, err) }()

	if err := s.repomanager.Tasks(s.db).SoftDelete(ctx, task.ID, s.clock.Now().UTC()); err != nil {
		return s.mapError(ctx, "error deleting task", err)
	}
	s.logger.Info(ctx, "task deleted", "task_id", task.ID)
	return nil
}

func (s *TaskService) mapError(ctx context.Context, msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrAlreadyCompleted) {
		return err
	}
	return internalError(ctx, s.logger, msg, err)
}

func checkDueDate(dueDate, now time.Time) error {
	if dueDate.Before(now.Add(MinDueDateLead)) {
		return fmt.Errorf("%w (got %s)", common.ErrDueDateNotFuture, dueDate.UTC().Format(time.RFC3339))
	}
	return nil
}
