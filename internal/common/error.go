// Package common defines shared constants and sentinel errors used across
// the TaskKeeper server and client. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")

	// Identity errors.
	ErrDuplicateIdentity  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityNotFound   = errors.New("user not found")

	// Token lifecycle errors.
	ErrTokenRequired      = errors.New("token required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionInvalidated = errors.New("session invalidated")

	// Task errors.
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrDueDateNotFuture = fmt.Errorf("%w: due date must be at least one minute in the future", ErrValidation)
)
