// Package rest is the HTTP boundary of the server: a chi router, the
// authentication and ownership middleware, the handlers and the table
// that turns domain errors into responses.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/access"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// UserService is the session authority as seen by the handlers.
type UserService interface {
	Signup(ctx context.Context, fullName, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Logout(ctx context.Context, userID string) error
}

type TodoService interface {
	access.Lookup[*models.Todo]
	Create(ctx context.Context, ownerID, name string) (*models.Todo, error)
	List(ctx context.Context, ownerID string, page models.PageRequest) (models.Page[models.Todo], error)
	Rename(ctx context.Context, todo *models.Todo, name string) (*models.Todo, error)
	Delete(ctx context.Context, todo *models.Todo) error
}

type TaskService interface {
	access.Lookup[*models.Task]
	Create(ctx context.Context, todo *models.Todo, description string, dueDate time.Time) (*models.Task, error)
	ListByTodo(ctx context.Context, todo *models.Todo, page models.PageRequest) (models.Page[models.Task], error)
	Update(ctx context.Context, task *models.Task, upd services.TaskUpdate) (*models.Task, error)
	Complete(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, task *models.Task) error
}

// Authenticator establishes the caller's identity from the Authorization
// header.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (context.Context, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Users          UserService
	Todos          TodoService
	Tasks          TaskService
	Auth           Authenticator
	DB             Pinger
	Logger         logging.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

type Server struct {
	address string
	users   UserService
	todos   TodoService
	tasks   TaskService
	auth    Authenticator
	db      Pinger
	logger  logging.Logger
	origins []string
	timeout time.Duration
}

func NewServer(address string, d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		address: address,
		users:   d.Users,
		todos:   d.Todos,
		tasks:   d.Tasks,
		auth:    d.Auth,
		db:      d.DB,
		logger:  logger.With("module", "http_server"),
		origins: origins,
		timeout: timeout,
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
