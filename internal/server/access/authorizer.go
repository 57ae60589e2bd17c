package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// Lookup is what the ownership check needs from a resource type: a way to
// load it and a way to name its owner. Nested resources resolve the owner
// through their parent.
type Lookup[R any] interface {
	FindByID(ctx context.Context, id string) (R, error)
	ResolveOwner(ctx context.Context, resource R) (string, error)
}

// Authorize loads resource id and checks that it belongs to the identity
// in ctx. On success the resource is returned and attached to the returned
// context, so handlers need no second lookup. A missing resource yields
// common.ErrorNotFound; one owned by someone else yields common.ErrForbidden.
func Authorize[R any](ctx context.Context, lookup Lookup[R], id string) (context.Context, R, error) {
	var zero R

	user, ok := IdentityFrom(ctx)
	if !ok {
		return ctx, zero, common.ErrTokenRequired
	}

	resource, err := lookup.FindByID(ctx, id)
	if err != nil {
		return ctx, zero, classify(err)
	}

	owner, err := lookup.ResolveOwner(ctx, resource)
	if err != nil {
		return ctx, zero, classify(err)
	}
	if owner != user.ID {
		return ctx, zero, common.ErrForbidden
	}

	return WithResource(ctx, resource), resource, nil
}

func classify(err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
