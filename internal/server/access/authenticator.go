package access

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// TokenVerifier decodes session tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// IdentityFinder loads the current state of an identity.
type IdentityFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator turns an Authorization header into an authenticated
// identity. A token is accepted only while its version matches the one
// stored for the user, so login and logout revoke older tokens at once.
type Authenticator struct {
	tokens     TokenVerifier
	identities IdentityFinder
}

func NewAuthenticator(tokens TokenVerifier, identities IdentityFinder) *Authenticator {
	return &Authenticator{tokens: tokens, identities: identities}
}

// Authenticate checks the bearer token in header and returns ctx with the
// identity attached. Failures are, in order of checking:
// common.ErrTokenRequired, common.ErrInvalidToken or common.ErrTokenExpired,
// common.ErrIdentityNotFound, common.ErrSessionInvalidated.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (context.Context, error) {
	token, err := BearerToken(header)
	if err != nil {
		return ctx, err
	}

	claims, err := a.tokens.VerifyToken(token)
	if err != nil {
		return ctx, err
	}

	user, err := a.identities.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ctx, common.ErrIdentityNotFound
		}
		return ctx, fmt.Errorf("%w: load identity: %v", common.ErrorInternal, err)
	}

	if user.TokenVersion != claims.TokenVersion {
		return ctx, common.ErrSessionInvalidated
	}

	return WithIdentity(ctx, user), nil
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively; a missing header, another scheme or
// an empty token all yield common.ErrTokenRequired.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrTokenRequired
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrTokenRequired
	}
	return token, nil
}
