package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
	"golang.org/x/crypto/bcrypt"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const testSecret = "test-secret"

type env struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	clock *abtime.ManualTime
	users *UserService
	todos *TodoService
	tasks *TaskService
}

// newEnv wires the services over a migrated in-memory SQLite database.
func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, rm.RunMigrations(ctx, db))

	clock := abtime.NewManualAtTime(epoch)
	log := logging.Nop()
	codec := auth.NewCodec(testSecret, time.Hour, clock)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	return &env{
		db:    db,
		rm:    rm,
		clock: clock,
		users: NewUserService(db, rm, hasher, codec, clock, log),
		todos: NewTodoService(db, rm, clock, log),
		tasks: NewTaskService(db, rm, clock, log),
	}
}

func (e *env) signup(t *testing.T, email string) *Session {
	t.Helper()
	s, err := e.users.Signup(context.Background(), "Ada Lovelace", email, "correct horse")
	require.NoError(t, err)
	return s
}

var errBoom = errors.New("boom")

// fakeRepoManager hands out the configured fakes regardless of DBTX.
type fakeRepoManager struct {
	u users.Repository
	t todos.Repository
	k tasks.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return f.u }
func (f *fakeRepoManager) Todos(dbx.DBTX) todos.Repository             { return f.t }
func (f *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository             { return f.k }

type fakeUsersRepo struct {
	findOut *models.Credentials
	findErr error
	bumpOut *models.User
	bumpErr error
}

func (f *fakeUsersRepo) Create(context.Context, *models.Registration) (*models.User, error) {
	return nil, errBoom
}
func (f *fakeUsersRepo) FindByEmail(context.Context, string) (*models.Credentials, error) {
	return f.findOut, f.findErr
}
func (f *fakeUsersRepo) FindByID(context.Context, string) (*models.User, error) {
	return nil, errBoom
}
func (f *fakeUsersRepo) BumpTokenVersion(context.Context, string, time.Time) (*models.User, error) {
	return f.bumpOut, f.bumpErr
}

type failingTodosRepo struct{ err error }

func (f failingTodosRepo) Create(context.Context, *models.Todo) (*models.Todo, error) {
	return nil, f.err
}
func (f failingTodosRepo) FindByID(context.Context, string) (*models.Todo, error) {
	return nil, f.err
}
func (f failingTodosRepo) ListByUser(context.Context, string, models.PageRequest) ([]models.Todo, int, error) {
	return nil, 0, f.err
}
func (f failingTodosRepo) Rename(context.Context, string, string, time.Time) (*models.Todo, error) {
	return nil, f.err
}
func (f failingTodosRepo) Delete(context.Context, string) error { return f.err }

type stubHasher struct {
	ok  bool
	err error
}

func (h stubHasher) Hash(string) (string, string, error) { return "salt", "hash", h.err }
func (h stubHasher) Verify(string, string, string) (bool, error) {
	return h.ok, h.err
}
