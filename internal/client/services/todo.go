package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// ErrUnknownRef is returned for a list number outside the last listing.
var ErrUnknownRef = errors.New("no such item in the last listing")

// TodoService runs todo and task commands. Commands accept either an id
// or the 1-based position of an item in the most recent listing.
type TodoService interface {
	ListTodos(ctx context.Context, search string) (*models.Page[models.Todo], error)
	CreateTodo(ctx context.Context, name string) (*models.Todo, error)
	RenameTodo(ctx context.Context, ref, name string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, ref string) error

	ListTasks(ctx context.Context, todoRef, search string) (*models.Page[models.Task], error)
	CreateTask(ctx context.Context, todoRef, description string, dueDate time.Time) (*models.Task, error)
	CompleteTask(ctx context.Context, ref string) (*models.Task, error)
	DeleteTask(ctx context.Context, ref string) error
}

type todoService struct {
	client client.Client

	mu        sync.Mutex
	lastTodos []string
	lastTasks []string
}

func NewTodoService(c client.Client) TodoService {
	return &todoService{client: c}
}

func (s *todoService) ListTodos(ctx context.Context, search string) (*models.Page[models.Todo], error) {
	p, err := s.client.ListTodos(ctx, models.ListOptions{Search: search})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(p.Data))
	for i, t := range p.Data {
		ids[i] = t.ID
	}
	s.mu.Lock()
	s.lastTodos = ids
	s.mu.Unlock()
	return p, nil
}

func (s *todoService) CreateTodo(ctx context.Context, name string) (*models.Todo, error) {
	return s.client.CreateTodo(ctx, name)
}

func (s *todoService) RenameTodo(ctx context.Context, ref, name string) (*models.Todo, error) {
	id, err := s.resolve(ref, todoRefs)
	if err != nil {
		return nil, err
	}
	return s.client.RenameTodo(ctx, id, name)
}

func (s *todoService) DeleteTodo(ctx context.Context, ref string) error {
	id, err := s.resolve(ref, todoRefs)
	if err != nil {
		return err
	}
	return s.client.DeleteTodo(ctx, id)
}

func (s *todoService) ListTasks(ctx context.Context, todoRef, search string) (*models.Page[models.Task], error) {
	todoID, err := s.resolve(todoRef, todoRefs)
	if err != nil {
		return nil, err
	}
	p, err := s.client.ListTasks(ctx, todoID, models.ListOptions{Search: search})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(p.Data))
	for i, t := range p.Data {
		ids[i] = t.ID
	}
	s.mu.Lock()
	s.lastTasks = ids
	s.mu.Unlock()
	return p, nil
}

func (s *todoService) CreateTask(ctx context.Context, todoRef, description string, dueDate time.Time) (*models.Task, error) {
	todoID, err := s.resolve(todoRef, todoRefs)
	if err != nil {
		return nil, err
	}
	return s.client.CreateTask(ctx, todoID, description, dueDate)
}

func (s *todoService) CompleteTask(ctx context.Context, ref string) (*models.Task, error) {
	id, err := s.resolve(ref, taskRefs)
	if err != nil {
		return nil, err
	}
	return s.client.CompleteTask(ctx, id)
}

func (s *todoService) DeleteTask(ctx context.Context, ref string) error {
	id, err := s.resolve(ref, taskRefs)
	if err != nil {
		return err
	}
	return s.client.DeleteTask(ctx, id)
}

type refKind int

const (
	todoRefs refKind = iota
	taskRefs
)

// resolve turns a list position into an id. Anything that is not a
// positive integer is taken to be an id already.
func (s *todoService) resolve(ref string, kind refKind) (string, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 {
		return ref, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	last := s.lastTodos
	if kind == taskRefs {
		last = s.lastTasks
	}
	if n > len(last) {
		return "", fmt.Errorf("%w: %d", ErrUnknownRef, n)
	}
	return last[n-1], nil
}
