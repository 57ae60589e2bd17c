package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	todoService services.TodoService
	reader      *bufio.Reader
	out         io.Writer
	now         func() time.Time
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient),
		todoService: services.NewTodoService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		now:         time.Now,
	}, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "TaskKeeper CLI (type 'help' for commands)")

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := a.authService.Ping(pingCtx); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			fmt.Fprintf(a.out, "Warning: %s is not reachable\n", a.config.ServerURL)
		} else {
			fmt.Fprintf(a.out, "Warning: server not ready: %v\n", err)
		}
	}
	cancel()

	runREPL(ctx, a, a.getStatus, a.reader)

	if a.isLoggedIn() {
		// Best effort; the token dies with the process anyway.
		_ = a.authService.Logout(context.Background())
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.Current() != nil
}

func (a *App) getStatus() string {
	if u := a.authService.Current(); u != nil {
		return u.Email
	}
	return "guest"
}
