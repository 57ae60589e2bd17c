package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/thejerf/abtime"
)

// TodoService manages todo lists. Methods taking a *models.Todo expect it
// to have been loaded and ownership-checked already.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       abtime.AbstractTime
	logger      logging.Logger
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager, clock abtime.AbstractTime, logger logging.Logger) *TodoService {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &TodoService{db: db, repomanager: m, clock: clock, logger: logger}
}

// Create adds a todo list owned by ownerID. A name the owner already uses
// yields common.ErrConflict.
func (s *TodoService) Create(ctx context.Context, ownerID, name string) (_ *models.Todo, err error) {
	ctx, span := startSpan(ctx, "TodoService.Create")
	defer func() { endSpan(span, err) }()

	now := s.clock.Now().UTC()
	todo, err := s.repomanager.Todos(s.db).Create(ctx, &models.Todo{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, s.mapError(ctx, "error creating todo", err)
	}
	return todo, nil
}

// List returns one page of the owner's todo lists, newest first.
func (s *TodoService) List(ctx context.Context, ownerID string, page models.PageRequest) (_ models.Page[models.Todo], err error) {
	ctx, span := startSpan(ctx, "TodoService.List")
	defer func() { endSpan(span, err) }()

	page = page.Normalize()
	items, total, err := s.repomanager.Todos(s.db).ListByUser(ctx, ownerID, page)
	if err != nil {
		return models.Page[models.Todo]{}, s.mapError(ctx, "error listing todos", err)
	}
	return models.NewPage(items, page, total), nil
}

// FindByID loads a todo list regardless of owner.
func (s *TodoService) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	todo, err := s.repomanager.Todos(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(ctx, "error loading todo", err)
	}
	return todo, nil
}

// ResolveOwner reports the identity that owns todo.
func (s *TodoService) ResolveOwner(_ context.Context, todo *models.Todo) (string, error) {
	return todo.UserID, nil
}

func (s *TodoService) Rename(ctx context.Context, todo *models.Todo, name string) (_ *models.Todo, err error) {
	ctx, span := startSpan(ctx, "TodoService.Rename")
	defer func() { endSpan(span, err) }()

	if name == todo.Name {
		return todo, nil
	}
	updated, err := s.repomanager.Todos(s.db).Rename(ctx, todo.ID, name, s.clock.Now().UTC())
	if err != nil {
		return nil, s.mapError(ctx, "error renaming todo", err)
	}
	return updated, nil
}

// Delete removes a todo list together with its tasks.
func (s *TodoService) Delete(ctx context.Context, todo *models.Todo) (err error) {
	ctx, span := startSpan(ctx, "TodoService.Delete")
	defer func() { endSpan(span, err) }()

	if err := s.repomanager.Todos(s.db).Delete(ctx, todo.ID); err != nil {
		return s.mapError(ctx, "error deleting todo", err)
	}
	s.logger.Info(ctx, "todo deleted", "todo_id", todo.ID)
	return nil
}

func (s *TodoService) mapError(ctx context.Context, msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrConflict) {
		return err
	}
	return internalError(ctx, s.logger, msg, err)
}
