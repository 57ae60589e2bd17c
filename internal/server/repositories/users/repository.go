// Package users implements the credential store: identities, their
// password material and the token version counter.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists identities. Lookups that miss return
// common.ErrorNotFound; a taken email on Create returns
// common.ErrDuplicateIdentity.
type Repository interface {
	Create(ctx context.Context, reg *models.Registration) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.Credentials, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// BumpTokenVersion atomically increments the token version and
	// returns the updated profile.
	BumpTokenVersion(ctx context.Context, id string, at time.Time) (*models.User, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.TokenVersion, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}
