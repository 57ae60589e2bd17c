package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

var errBoom = errors.New("boom")

// fakeClient records the ids it was called with and returns canned pages.
type fakeClient struct {
	token string

	session  *models.Session
	authErr  error
	logoutOK bool

	todos []models.Todo
	tasks []models.Task

	lastID       string
	lastTodoID   string
	lastSearch   string
	lastPassword string
	lastDue      time.Time
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) Signup(_ context.Context, _, _, password string) (*models.Session, error) {
	f.lastPassword = password
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.token = f.session.Token
	return f.session, nil
}

func (f *fakeClient) Login(_ context.Context, _, password string) (*models.Session, error) {
	f.lastPassword = password
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.token = f.session.Token
	return f.session, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.token = ""
	if !f.logoutOK {
		return errBoom
	}
	return nil
}

func (f *fakeClient) SetToken(token string) { f.token = token }
func (f *fakeClient) Token() string         { return f.token }

func (f *fakeClient) ListTodos(_ context.Context, opts models.ListOptions) (*models.Page[models.Todo], error) {
	f.lastSearch = opts.Search
	return &models.Page[models.Todo]{Data: f.todos, Pagination: models.Pagination{Total: len(f.todos)}}, nil
}

func (f *fakeClient) CreateTodo(_ context.Context, name string) (*models.Todo, error) {
	return &models.Todo{ID: "new", Name: name}, nil
}

func (f *fakeClient) RenameTodo(_ context.Context, id, name string) (*models.Todo, error) {
	f.lastID = id
	return &models.Todo{ID: id, Name: name}, nil
}

func (f *fakeClient) DeleteTodo(_ context.Context, id string) error {
	f.lastID = id
	return nil
}

func (f *fakeClient) ListTasks(_ context.Context, todoID string, _ models.ListOptions) (*models.Page[models.Task], error) {
	f.lastTodoID = todoID
	return &models.Page[models.Task]{Data: f.tasks, Pagination: models.Pagination{Total: len(f.tasks)}}, nil
}

func (f *fakeClient) CreateTask(_ context.Context, todoID, description string, due time.Time) (*models.Task, error) {
	f.lastTodoID = todoID
	f.lastDue = due
	return &models.Task{ID: "t-new", TodoID: todoID, Description: description, DueDate: due}, nil
}

func (f *fakeClient) CompleteTask(_ context.Context, id string) (*models.Task, error) {
	f.lastID = id
	return &models.Task{ID: id, Status: "completed"}, nil
}

func (f *fakeClient) DeleteTask(_ context.Context, id string) error {
	f.lastID = id
	return nil
}
