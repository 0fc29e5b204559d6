package session

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func TestCredentials_Claims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	c := Credentials{Token: signed(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
		Username:         "ana",
	})}

	claims, err := c.Claims()
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.True(t, exp.Equal(claims.ExpiresAt.Time))
}

func TestCredentials_Claims_Malformed(t *testing.T) {
	_, err := Credentials{Token: "not-a-jwt"}.Claims()
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestCredentials_Expired(t *testing.T) {
	now := time.Now()
	past := Credentials{Token: signed(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}})}
	future := Credentials{Token: signed(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}})}

	assert.True(t, past.Expired(now))
	assert.False(t, future.Expired(now))
	assert.False(t, Credentials{Token: "opaque"}.Expired(now))
	assert.False(t, Credentials{Token: signed(t, Claims{})}.Expired(now))
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := FromContext(ctx)
	assert.False(t, ok)

	_, ok = FromContext(WithCredentials(ctx, Credentials{}))
	assert.False(t, ok, "zero credentials are not credentials")

	got, ok := FromContext(WithCredentials(ctx, Credentials{Token: "t", Username: "u"}))
	require.True(t, ok)
	assert.Equal(t, Credentials{Token: "t", Username: "u"}, got)
}
