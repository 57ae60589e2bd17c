package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

const apiPrefix = "/api/v1"

// HTTPClient implements Client over the JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/readyz", nil, nil)
}

func (c *HTTPClient) Signup(ctx context.Context, fullName, email, password string) (*models.Session, error) {
	body := map[string]string{"fullName": fullName, "email": email, "password": password}
	var s models.Session
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/signup", body, &s); err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return &s, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var s models.Session
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/login", body, &s); err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return &s, nil
}

// Logout revokes the session on the server and forgets the token. The
// token is dropped even when the server call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

func (c *HTTPClient) ListTodos(ctx context.Context, opts models.ListOptions) (*models.Page[models.Todo], error) {
	var p models.Page[models.Todo]
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/todo"+listQuery(opts), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CreateTodo(ctx context.Context, name string) (*models.Todo, error) {
	var t models.Todo
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/todo", map[string]string{"name": name}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) RenameTodo(ctx context.Context, id, name string) (*models.Todo, error) {
	var t models.Todo
	if err := c.do(ctx, http.MethodPatch, apiPrefix+"/todo/"+url.PathEscape(id), map[string]string{"name": name}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, apiPrefix+"/todo/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListTasks(ctx context.Context, todoID string, opts models.ListOptions) (*models.Page[models.Task], error) {
	var p models.Page[models.Task]
	path := apiPrefix + "/todo/" + url.PathEscape(todoID) + "/tasks" + listQuery(opts)
	if err := c.do(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, todoID, description string, dueDate time.Time) (*models.Task, error) {
	body := struct {
		TodoID      string    `json:"todoId"`
		Description string    `json:"description"`
		DueDate     time.Time `json:"dueDate"`
	}{todoID, description, dueDate.UTC()}

	var t models.Task
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/task", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) CompleteTask(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	if err := c.do(ctx, http.MethodPatch, apiPrefix+"/task/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, apiPrefix+"/task/"+url.PathEscape(id), nil, nil)
}

// do sends one request. A non-2xx reply becomes *APIError; out may be nil
// when the body is not needed.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = strconv.Itoa(resp.StatusCode)
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func listQuery(opts models.ListOptions) string {
	q := url.Values{}
	if opts.PageNumber > 0 {
		q.Set("pageNumber", strconv.Itoa(opts.PageNumber))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
