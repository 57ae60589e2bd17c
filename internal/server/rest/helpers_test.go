package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/access"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
	"golang.org/x/crypto/bcrypt"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	t     *testing.T
	srv   *httptest.Server
	clock *abtime.ManualTime
}

// newHarness serves the full router over a migrated in-memory SQLite
// database, with a manual clock shared by the codec and the services.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, rm.RunMigrations(ctx, db))

	clock := abtime.NewManualAtTime(epoch)
	log := logging.Nop()
	codec := auth.NewCodec("test-secret", time.Hour, clock)

	users := services.NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), codec, clock, log)

	s := NewServer("", Deps{
		Users:  users,
		Todos:  services.NewTodoService(db, rm, clock, log),
		Tasks:  services.NewTaskService(db, rm, clock, log),
		Auth:   access.NewAuthenticator(users, rm.Users(db)),
		DB:     db,
		Logger: log,
	})

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	return &harness{t: t, srv: srv, clock: clock}
}

type response struct {
	Status int
	Body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "body: %s", r.Body)
}

func (r response) errorBody(t *testing.T) errorResponse {
	t.Helper()
	var e errorResponse
	r.decode(t, &e)
	return e
}

func (h *harness) do(method, path, token string, body any) response {
	h.t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, h.srv.URL+path, rd)
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.srv.Client().Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return response{Status: resp.StatusCode, Body: data}
}

type sessionBody struct {
	User    map[string]any `json:"user"`
	Token   string         `json:"token"`
	Expires int64          `json:"expires"`
}

func (h *harness) signup(name, email string) sessionBody {
	h.t.Helper()
	resp := h.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"fullName": name, "email": email, "password": "correcthorse",
	})
	require.Equal(h.t, http.StatusCreated, resp.Status, "body: %s", resp.Body)
	var s sessionBody
	resp.decode(h.t, &s)
	return s
}

func (h *harness) createTodo(token, name string) string {
	h.t.Helper()
	resp := h.do(http.MethodPost, "/api/v1/todo", token, map[string]string{"name": name})
	require.Equal(h.t, http.StatusCreated, resp.Status, "body: %s", resp.Body)
	var todo struct {
		ID string `json:"id"`
	}
	resp.decode(h.t, &todo)
	return todo.ID
}

func (h *harness) createTask(token, todoID, description string, due time.Time) map[string]any {
	h.t.Helper()
	resp := h.do(http.MethodPost, "/api/v1/task", token, map[string]any{
		"todoId": todoID, "description": description, "dueDate": due.Format(time.RFC3339),
	})
	require.Equal(h.t, http.StatusCreated, resp.Status, "body: %s", resp.Body)
	var task map[string]any
	resp.decode(h.t, &task)
	return task
}
