// Package session holds the authenticated identity of the CLI user.
//
// Credentials are plain values. They travel to the remote gateway inside a
// context.Context (WithCredentials) instead of being read from a global, and
// they are persisted between runs by Manager.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Credentials is the bearer token issued at login plus the display name.
type Credentials struct {
	Token    string
	Username string
}

// IsZero reports whether no token is present.
func (c Credentials) IsZero() bool {
	return c.Token == ""
}

// Claims is the subset of token claims the client cares about.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// Claims decodes the token payload without verifying the signature. The
// client never holds the signing key; the server remains the authority.
func (c Credentials) Claims() (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// Expired reports whether the token carries an exp claim that is already in
// the past. Opaque tokens are never considered expired locally.
func (c Credentials) Expired(now time.Time) bool {
	claims, err := c.Claims()
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

type ctxKey struct{}

// WithCredentials returns a child context carrying c.
func WithCredentials(ctx context.Context, c Credentials) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext extracts credentials placed by WithCredentials.
func FromContext(ctx context.Context) (Credentials, bool) {
	c, ok := ctx.Value(ctxKey{}).(Credentials)
	return c, ok && !c.IsZero()
}
