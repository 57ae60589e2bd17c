package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// Client is the API surface the CLI uses.
type Client interface {
	Ping(ctx context.Context) error

	Signup(ctx context.Context, fullName, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	SetToken(token string)
	Token() string

	ListTodos(ctx context.Context, opts models.ListOptions) (*models.Page[models.Todo], error)
	CreateTodo(ctx context.Context, name string) (*models.Todo, error)
	RenameTodo(ctx context.Context, id, name string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error

	ListTasks(ctx context.Context, todoID string, opts models.ListOptions) (*models.Page[models.Task], error)
	CreateTask(ctx context.Context, todoID, description string, dueDate time.Time) (*models.Task, error)
	CompleteTask(ctx context.Context, id string) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
