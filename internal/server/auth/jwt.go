// Package auth contains the credential primitives of the server: the JWT
// token codec and the bcrypt password hasher. Both are pure and hold no
// per-request state.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/thejerf/abtime"
)

// Claims is the payload embedded in every session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"id"`
	Email        string `json:"email"`
	TokenVersion int64  `json:"tokenVersion"`
}

// Codec signs and verifies HS256 session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	clock  abtime.AbstractTime
	parser *jwt.Parser
}

// NewCodec returns a Codec for the given secret and token lifetime. A nil
// clock means wall-clock time.
func NewCodec(secret string, ttl time.Duration, clock abtime.AbstractTime) *Codec {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

// Sign issues a token for the identity fields of claims, expiring one TTL
// from now. It also returns the TTL in milliseconds.
func (c *Codec) Sign(claims Claims) (string, int64, error) {
	now := c.clock.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	return token, c.ttl.Milliseconds(), nil
}

// Verify checks the signature and expiry of token and returns its claims.
// An expired token yields common.ErrTokenExpired; every other failure
// yields common.ErrInvalidToken.
func (c *Codec) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := c.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !parsed.Valid || claims.UserID == "" || claims.TokenVersion < 1 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
