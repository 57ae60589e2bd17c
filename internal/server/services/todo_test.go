package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodo_CreateFindAndOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.signup(t, "ada@example.com").User

	todo, err := e.todos.Create(ctx, owner.ID, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", todo.Name)
	assert.True(t, todo.CreatedAt.Equal(epoch))

	found, err := e.todos.FindByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, found.ID)

	ownerID, err := e.todos.ResolveOwner(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, ownerID)
}

func TestTodo_NamesAreUniquePerOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada@example.com").User
	bob := e.signup(t, "bob@example.com").User

	_, err := e.todos.Create(ctx, ada.ID, "Groceries")
	require.NoError(t, err)

	_, err = e.todos.Create(ctx, ada.ID, "Groceries")
	require.ErrorIs(t, err, common.ErrConflict)

	_, err = e.todos.Create(ctx, bob.ID, "Groceries")
	require.NoError(t, err)
}

func TestTodo_ListPagesNewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada@example.com").User
	bob := e.signup(t, "bob@example.com").User

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := e.todos.Create(ctx, ada.ID, name)
		require.NoError(t, err)
		e.clock.Advance(time.Second)
	}
	_, err := e.todos.Create(ctx, bob.ID, "Bob's list")
	require.NoError(t, err)

	page, err := e.todos.List(ctx, ada.ID, models.PageRequest{Number: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{PageNumber: 1, PageSize: 2, Total: 3}, page.Pagination)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Gamma", page.Data[0].Name)
	assert.Equal(t, "Beta", page.Data[1].Name)

	search, err := e.todos.List(ctx, ada.ID, models.PageRequest{Search: "alp"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPageSize, search.Pagination.PageSize)
	require.Len(t, search.Data, 1)
	assert.Equal(t, "Alpha", search.Data[0].Name)

	empty, err := e.todos.List(ctx, ada.ID, models.PageRequest{Number: 5, Size: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
}

func TestTodo_RenameAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada@example.com").User

	todo, err := e.todos.Create(ctx, ada.ID, "Groceries")
	require.NoError(t, err)
	other, err := e.todos.Create(ctx, ada.ID, "Chores")
	require.NoError(t, err)

	e.clock.Advance(time.Minute)
	renamed, err := e.todos.Rename(ctx, todo, "Food")
	require.NoError(t, err)
	assert.Equal(t, "Food", renamed.Name)
	assert.True(t, renamed.UpdatedAt.After(renamed.CreatedAt))

	_, err = e.todos.Rename(ctx, other, "Food")
	require.ErrorIs(t, err, common.ErrConflict)

	require.NoError(t, e.todos.Delete(ctx, renamed))
	_, err = e.todos.FindByID(ctx, todo.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTodo_StoreFailureIsInternal(t *testing.T) {
	s := NewTodoService(nil, &fakeRepoManager{t: failingTodosRepo{err: errBoom}}, nil, nil)

	_, err := s.Create(context.Background(), "u-1", "Groceries")
	require.ErrorIs(t, err, common.ErrorInternal)

	_, err = s.FindByID(context.Background(), "t-1")
	require.ErrorIs(t, err, common.ErrorInternal)

	s = NewTodoService(nil, &fakeRepoManager{t: failingTodosRepo{err: common.ErrorNotFound}}, nil, nil)
	_, err = s.FindByID(context.Background(), "t-1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
