// Package services contains the application services behind the TaskKeeper
// CLI: session handling and todo/task operations on top of client.Client.
package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// AuthService manages the single in-memory session of the CLI.
type AuthService interface {
	Signup(ctx context.Context, fullName, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Current() *models.User
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client

	mu   sync.RWMutex
	user *models.User
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

// Signup creates the account and starts a session with the token the
// server returns. The password buffer is wiped before returning.
func (a *authService) Signup(ctx context.Context, fullName, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	s, err := a.client.Signup(ctx, fullName, email, string(password))
	if err != nil {
		return nil, err
	}
	a.setUser(&s.User)
	return &s.User, nil
}

// Login replaces the current session. The server revokes every earlier
// token of the account, including ones held by other clients.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	s, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	a.setUser(&s.User)
	return &s.User, nil
}

// Logout ends the session locally even when the server rejects the call,
// for example because the token was already revoked.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.setUser(nil)
	return err
}

func (a *authService) Current() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}
