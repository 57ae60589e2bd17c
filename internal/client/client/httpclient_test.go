package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL+"/", time.Second)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("localhost:4500", time.Second)
	require.Error(t, err)
}

func TestLoginStoresTokenAndLogoutDropsIt(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, models.Session{User: models.User{ID: "u-1"}, Token: "tok-1", Expires: 1000})
	})
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	s, err := c.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "u-1", s.User.ID)
	assert.Equal(t, "tok-1", c.Token())

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())
}

func TestAPIErrorsCarryServerCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/todo", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"status": "fail", "code": "SessionInvalidated", "error": "session has been invalidated",
		})
	})
	mux.HandleFunc("DELETE /api/v1/task/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	c := newTestClient(t, mux)
	c.SetToken("stale")

	_, err := c.ListTodos(context.Background(), models.ListOptions{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "SessionInvalidated", apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "SessionInvalidated: session has been invalidated", err.Error())

	err = c.DeleteTask(context.Background(), "t-1")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "502", apiErr.Code)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestTodoAndTaskCalls(t *testing.T) {
	due := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/todo/{id}/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "td-1", r.PathValue("id"))
		assert.Equal(t, "2", r.URL.Query().Get("pageNumber"))
		assert.Equal(t, "milk", r.URL.Query().Get("search"))
		writeJSON(w, http.StatusOK, models.Page[models.Task]{
			Data:       []models.Task{{ID: "t-1", Description: "Buy milk"}},
			Pagination: models.Pagination{PageNumber: 2, PageSize: 30, Total: 31},
		})
	})
	mux.HandleFunc("POST /api/v1/task", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TodoID      string    `json:"todoId"`
			Description string    `json:"description"`
			DueDate     time.Time `json:"dueDate"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "td-1", body.TodoID)
		assert.True(t, body.DueDate.Equal(due))
		writeJSON(w, http.StatusCreated, models.Task{ID: "t-2", TodoID: body.TodoID, Description: body.Description, DueDate: body.DueDate, Status: "pending"})
	})
	mux.HandleFunc("PATCH /api/v1/todo/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, models.Todo{ID: r.PathValue("id"), Name: body["name"]})
	})
	mux.HandleFunc("PATCH /api/v1/task/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Task{ID: r.PathValue("id"), Status: "completed"})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	page, err := c.ListTasks(ctx, "td-1", models.ListOptions{PageNumber: 2, Search: "milk"})
	require.NoError(t, err)
	assert.Equal(t, 31, page.Pagination.Total)
	require.Len(t, page.Data, 1)

	task, err := c.CreateTask(ctx, "td-1", "Buy eggs", due.In(time.FixedZone("X", 3600)))
	require.NoError(t, err)
	assert.Equal(t, "t-2", task.ID)

	todo, err := c.RenameTodo(ctx, "td-1", "Food")
	require.NoError(t, err)
	assert.Equal(t, "Food", todo.Name)

	done, err := c.CompleteTask(ctx, "t-2")
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, time.Second)
	require.NoError(t, err)

	err = c.Ping(context.Background())
	require.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
}

func TestListQuery(t *testing.T) {
	assert.Equal(t, "", listQuery(models.ListOptions{}))
	assert.Equal(t, "?pageNumber=1&pageSize=5&search=a+b", listQuery(models.ListOptions{PageNumber: 1, PageSize: 5, Search: "a b"}))
}
