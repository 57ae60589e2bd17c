// Package server initializes and runs the TaskKeeper server: it opens the
// configured database, applies migrations, wires the services and runs the
// HTTP API next to the gRPC health endpoint until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/access"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/rest"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/dmitrijs2005/taskkeeper/internal/telemetry"
	"github.com/thejerf/abtime"

	gs "github.com/dmitrijs2005/taskkeeper/internal/server/grpc"
)

const (
	serviceName    = "taskkeeper"
	healthInterval = 5 * time.Second
)

var setupTelemetry = telemetry.Setup

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	httpServer  *rest.Server
	healthCheck *gs.HealthServer
	shutdownOT  func(context.Context) error
}

// NewApp connects to the database, migrates it and builds the servers.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	shutdownOT, err := setupTelemetry(ctx, serviceName, c.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		_ = shutdownOT(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		_ = db.Close()
		_ = shutdownOT(ctx)
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		_ = shutdownOT(ctx)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	clock := abtime.NewRealTime()
	codec := auth.NewCodec(c.SecretKey, c.TokenTTL, clock)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	users := services.NewUserService(db, rm, hasher, codec, clock, logger.With("module", "users"))
	todos := services.NewTodoService(db, rm, clock, logger.With("module", "todos"))
	tasks := services.NewTaskService(db, rm, clock, logger.With("module", "tasks"))

	httpServer := rest.NewServer(c.HTTPAddr, rest.Deps{
		Users:          users,
		Todos:          todos,
		Tasks:          tasks,
		Auth:           access.NewAuthenticator(users, rm.Users(db)),
		DB:             db,
		Logger:         logger,
		AllowedOrigins: c.AllowedOrigins,
		RequestTimeout: c.RequestTimeout,
	})

	var healthCheck *gs.HealthServer
	if c.HealthAddrGRPC != "" {
		healthCheck = gs.NewHealthServer(c.HealthAddrGRPC, logger, db, healthInterval)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		httpServer:  httpServer,
		healthCheck: healthCheck,
		shutdownOT:  shutdownOT,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer runs one server; a failure brings the whole app down.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a shutdown signal arrives or a server
// fails, then stops both servers and releases the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.httpServer.Run)
	}()

	if app.healthCheck != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runServer(ctx, cancelFunc, "grpc_health", app.healthCheck.Run)
		}()
	}

	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.shutdownOT(shutdownCtx); err != nil {
		app.logger.Warn(shutdownCtx, "telemetry shutdown failed", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(shutdownCtx, "db close failed", "error", err)
	}

	app.logger.Info(shutdownCtx, "App stopped")

	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
