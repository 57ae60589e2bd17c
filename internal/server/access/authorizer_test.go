package access

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type todoLookup map[string]*models.Todo

func (l todoLookup) FindByID(_ context.Context, id string) (*models.Todo, error) {
	t, ok := l[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (l todoLookup) ResolveOwner(_ context.Context, t *models.Todo) (string, error) {
	return t.UserID, nil
}

// taskLookup resolves owners through the parent todo.
type taskLookup struct {
	tasks map[string]*models.Task
	todos todoLookup
}

func (l taskLookup) FindByID(_ context.Context, id string) (*models.Task, error) {
	t, ok := l.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (l taskLookup) ResolveOwner(ctx context.Context, t *models.Task) (string, error) {
	todo, err := l.todos.FindByID(ctx, t.TodoID)
	if err != nil {
		return "", err
	}
	return todo.UserID, nil
}

type brokenLookup struct{}

func (brokenLookup) FindByID(context.Context, string) (*models.Todo, error) {
	return nil, errors.New("connection reset")
}
func (brokenLookup) ResolveOwner(context.Context, *models.Todo) (string, error) { return "", nil }

func fixtures() (todoLookup, taskLookup) {
	todos := todoLookup{
		"todo-ada": {ID: "todo-ada", UserID: "ada"},
		"todo-bob": {ID: "todo-bob", UserID: "bob"},
	}
	tasks := taskLookup{
		tasks: map[string]*models.Task{
			"task-ada":    {ID: "task-ada", TodoID: "todo-ada"},
			"task-bob":    {ID: "task-bob", TodoID: "todo-bob"},
			"task-orphan": {ID: "task-orphan", TodoID: "gone"},
		},
		todos: todos,
	}
	return todos, tasks
}

func TestAuthorize_Todo(t *testing.T) {
	todos, _ := fixtures()
	ctx := WithIdentity(context.Background(), &models.User{ID: "ada"})

	ctx2, todo, err := Authorize[*models.Todo](ctx, todos, "todo-ada")
	require.NoError(t, err)
	assert.Equal(t, "todo-ada", todo.ID)

	attached, ok := ResourceFrom[*models.Todo](ctx2)
	require.True(t, ok)
	assert.Same(t, todo, attached)

	_, _, err = Authorize[*models.Todo](ctx, todos, "todo-bob")
	require.ErrorIs(t, err, common.ErrForbidden)

	_, _, err = Authorize[*models.Todo](ctx, todos, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAuthorize_TaskThroughParent(t *testing.T) {
	_, tasks := fixtures()
	ctx := WithIdentity(context.Background(), &models.User{ID: "ada"})

	ctx2, task, err := Authorize[*models.Task](ctx, tasks, "task-ada")
	require.NoError(t, err)
	assert.Equal(t, "task-ada", task.ID)

	_, ok := ResourceFrom[*models.Todo](ctx2)
	assert.False(t, ok, "a task authorization must not attach a todo")

	_, _, err = Authorize[*models.Task](ctx, tasks, "task-bob")
	require.ErrorIs(t, err, common.ErrForbidden)

	_, _, err = Authorize[*models.Task](ctx, tasks, "task-orphan")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAuthorize_RequiresIdentity(t *testing.T) {
	todos, _ := fixtures()
	_, _, err := Authorize[*models.Todo](context.Background(), todos, "todo-ada")
	require.ErrorIs(t, err, common.ErrTokenRequired)
}

func TestAuthorize_StoreFailureIsInternal(t *testing.T) {
	ctx := WithIdentity(context.Background(), &models.User{ID: "ada"})
	_, _, err := Authorize[*models.Todo](ctx, brokenLookup{}, "todo-ada")
	require.ErrorIs(t, err, common.ErrorInternal)
}
