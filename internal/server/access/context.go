// Package access holds the request-scoped authentication and authorization
// stages. Each stage takes a context and returns a context augmented with
// what it established: the caller's identity, then the resource it may act on.
package access

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type identityKey struct{}

type resourceKey[R any] struct{}

// WithIdentity returns a copy of ctx carrying the authenticated user.
func WithIdentity(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, identityKey{}, u)
}

// IdentityFrom returns the user attached by the authenticator, if any.
func IdentityFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(identityKey{}).(*models.User)
	return u, ok && u != nil
}

// WithResource returns a copy of ctx carrying an authorized resource.
// Resources are keyed by type, so a todo and a task can coexist.
func WithResource[R any](ctx context.Context, r R) context.Context {
	return context.WithValue(ctx, resourceKey[R]{}, r)
}

// ResourceFrom returns the resource of type R attached by an authorizer.
func ResourceFrom[R any](ctx context.Context) (R, bool) {
	r, ok := ctx.Value(resourceKey[R]{}).(R)
	return r, ok
}
