// Package services contains server-side business logic. This file implements
// UserService, the session authority: signup, login, logout and token
// verification, with the per-user token version as the revocation switch.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/thejerf/abtime"
)

// PasswordHasher salts and hashes passwords and checks candidates against
// stored material.
type PasswordHasher interface {
	Hash(plaintext string) (salt string, hash string, err error)
	Verify(plaintext, hash, salt string) (bool, error)
}

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Sign(claims auth.Claims) (token string, expiresInMs int64, err error)
	Verify(token string) (*auth.Claims, error)
}

// Session is the result of a successful signup or login.
type Session struct {
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
	Expires int64        `json:"expires"`
}

// UserService provides the identity lifecycle:
// - Signup: create an identity and open its first session
// - Login: verify a password and open a session, revoking older ones
// - Logout: revoke every outstanding session of an identity
// - VerifyToken: decode a session token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	codec       TokenCodec
	clock       abtime.AbstractTime
	logger      logging.Logger

	decoyOnce sync.Once
	decoySalt string
	decoyHash string
}

// NewUserService constructs a UserService. A nil clock means wall-clock time.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, codec TokenCodec, clock abtime.AbstractTime, logger logging.Logger) *UserService {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		codec:       codec,
		clock:       clock,
		logger:      logger,
	}
}

// Signup registers a new identity and returns its first session. A taken
// email yields common.ErrDuplicateIdentity.
func (s *UserService) Signup(ctx context.Context, fullName, email, password string) (_ *Session, err error) {
	ctx, span := startSpan(ctx, "UserService.Signup")
	defer func() { endSpan(span, err) }()

	// bcrypt runs before the transaction so the connection is not held
	// during hashing.
	salt, hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, s.internal(ctx, "error hashing password", err)
	}

	reg := &models.Registration{
		ID:        uuid.NewString(),
		FullName:  fullName,
		Email:     email,
		Hash:      hash,
		Salt:      salt,
		CreatedAt: s.clock.Now().UTC(),
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrDuplicateIdentity
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error searching user: %w", err)
		}

		user, err = repo.Create(ctx, reg)
		if err != nil && !errors.Is(err, common.ErrDuplicateIdentity) {
			return fmt.Errorf("error creating user: %w", err)
		}
		return err
	})
	if errors.Is(err, common.ErrDuplicateIdentity) {
		return nil, common.ErrDuplicateIdentity
	}
	if err != nil {
		return nil, s.internal(ctx, "signup failed", err)
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login verifies the password for email and opens a new session. The token
// version is incremented, so tokens from earlier sessions stop working.
// An unknown email and a wrong password both yield
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (_ *Session, err error) {
	ctx, span := startSpan(ctx, "UserService.Login")
	defer func() { endSpan(span, err) }()

	repo := s.repomanager.Users(s.db)

	creds, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnVerify(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.internal(ctx, "error searching user", err)
	}

	ok, err := s.hasher.Verify(password, creds.Hash, creds.Salt)
	if err != nil {
		return nil, s.internal(ctx, "error verifying password", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	user, err := repo.BumpTokenVersion(ctx, creds.ID, s.clock.Now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.internal(ctx, "error bumping token version", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID, "token_version", user.TokenVersion)
	return s.issue(ctx, user)
}

// Logout revokes every token issued to userID so far.
func (s *UserService) Logout(ctx context.Context, userID string) (err error) {
	ctx, span := startSpan(ctx, "UserService.Logout")
	defer func() { endSpan(span, err) }()

	user, err := s.repomanager.Users(s.db).BumpTokenVersion(ctx, userID, s.clock.Now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrIdentityNotFound
		}
		return s.internal(ctx, "error bumping token version", err)
	}

	s.logger.Info(ctx, "user logged out", "user_id", user.ID, "token_version", user.TokenVersion)
	return nil
}

// VerifyToken decodes a session token. It reports common.ErrTokenExpired or
// common.ErrInvalidToken; comparing the version with the stored one is
// left to the caller.
func (s *UserService) VerifyToken(token string) (*auth.Claims, error) {
	return s.codec.Verify(token)
}

func (s *UserService) issue(ctx context.Context, user *models.User) (*Session, error) {
	token, expires, err := s.codec.Sign(auth.Claims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, s.internal(ctx, "error signing token", err)
	}
	return &Session{User: user, Token: token, Expires: expires}, nil
}

// burnVerify spends one password check on a throwaway hash so that an
// unknown email costs about as much as a wrong password.
func (s *UserService) burnVerify(password string) {
	s.decoyOnce.Do(func() {
		s.decoySalt, s.decoyHash, _ = s.hasher.Hash(uuid.NewString())
	})
	if s.decoyHash != "" {
		_, _ = s.hasher.Verify(password, s.decoyHash, s.decoySalt)
	}
}

func (s *UserService) internal(ctx context.Context, msg string, err error) error {
	return internalError(ctx, s.logger, msg, err)
}

// internalError logs the cause and hides it behind common.ErrorInternal.
func internalError(ctx context.Context, logger logging.Logger, msg string, err error) error {
	logger.Error(ctx, msg, "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, msg, err)
}
