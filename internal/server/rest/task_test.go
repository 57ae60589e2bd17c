package rest

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycle(t *testing.T) {
	h := newHarness(t)
	ada := h.signup("Ada", "ada@example.com").Token
	todoID := h.createTodo(ada, "Groceries")

	task := h.createTask(ada, todoID, "Buy milk", epoch.Add(100*time.Hour))
	id := task["id"].(string)
	assert.Equal(t, "pending", task["status"])
	assert.Equal(t, "green", task["code"])
	assert.Equal(t, todoID, task["todoId"])

	resp := h.do(http.MethodPut, "/api/v1/task/"+id, ada, map[string]any{
		"dueDate": epoch.Add(2 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)
	resp.decode(t, &task)
	assert.Equal(t, "Buy milk", task["description"])
	assert.Equal(t, "red", task["code"])

	resp = h.do(http.MethodPatch, "/api/v1/task/"+id, ada, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	resp.decode(t, &task)
	assert.Equal(t, "completed", task["status"])
	assert.Nil(t, task["code"])

	resp = h.do(http.MethodPatch, "/api/v1/task/"+id, ada, nil)
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, CodeAlreadyCompleted, resp.errorBody(t).Code)

	resp = h.do(http.MethodDelete, "/api/v1/task/"+id, ada, nil)
	require.Equal(t, http.StatusNoContent, resp.Status)

	resp = h.do(http.MethodGet, "/api/v1/task/"+id, ada, nil)
	require.Equal(t, http.StatusNotFound, resp.Status)
}

func TestTaskDueDateValidation(t *testing.T) {
	h := newHarness(t)
	ada := h.signup("Ada", "ada@example.com").Token
	todoID := h.createTodo(ada, "Groceries")

	resp := h.do(http.MethodPost, "/api/v1/task", ada, map[string]any{
		"todoId": todoID, "description": "Buy milk", "dueDate": epoch.Add(30 * time.Second).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, CodeDateNotFuture, resp.errorBody(t).Code)

	resp = h.do(http.MethodPost, "/api/v1/task", ada, map[string]any{
		"todoId": todoID, "description": "Buy milk", "dueDate": "tomorrow",
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, CodeValidation, resp.errorBody(t).Code)

	resp = h.do(http.MethodPost, "/api/v1/task", ada, map[string]any{"todoId": "nope"})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	fields := resp.errorBody(t).Fields
	assert.Contains(t, fields, "todoId")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "dueDate")
}

func TestTaskOwnershipThroughParent(t *testing.T) {
	h := newHarness(t)
	ada := h.signup("Ada", "ada@example.com").Token
	bob := h.signup("Bob", "bob@example.com").Token

	adaTodo := h.createTodo(ada, "Groceries")
	task := h.createTask(ada, adaTodo, "Buy milk", epoch.Add(time.Hour))
	id := task["id"].(string)

	// Bob cannot add tasks to Ada's list.
	resp := h.do(http.MethodPost, "/api/v1/task", bob, map[string]any{
		"todoId": adaTodo, "description": "Sneaky", "dueDate": epoch.Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusForbidden, resp.Status)

	resp = h.do(http.MethodPost, "/api/v1/task", bob, map[string]any{
		"todoId": "00000000-0000-4000-8000-000000000000", "description": "Lost", "dueDate": epoch.Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusNotFound, resp.Status)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		var body any
		if method == http.MethodPut {
			body = map[string]string{"description": "Mine"}
		}
		resp := h.do(method, "/api/v1/task/"+id, bob, body)
		require.Equal(t, http.StatusForbidden, resp.Status, method)
	}

	resp = h.do(http.MethodGet, "/api/v1/todo/"+adaTodo+"/tasks", ada, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	var page struct {
		Data []map[string]any `json:"data"`
	}
	resp.decode(t, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "pending", page.Data[0]["status"])
}

func TestTasksCascadeWithTodo(t *testing.T) {
	h := newHarness(t)
	ada := h.signup("Ada", "ada@example.com").Token
	todoID := h.createTodo(ada, "Groceries")
	id := h.createTask(ada, todoID, "Buy milk", epoch.Add(time.Hour))["id"].(string)

	resp := h.do(http.MethodDelete, "/api/v1/todo/"+todoID, ada, nil)
	require.Equal(t, http.StatusNoContent, resp.Status)

	resp = h.do(http.MethodGet, "/api/v1/task/"+id, ada, nil)
	require.Equal(t, http.StatusNotFound, resp.Status)
}
