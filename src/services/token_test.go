package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-unit-tests-32ch!"

func TestNewTokenIssuer_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenIssuer("short")
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestTokenIssuer_Issue(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret)
	require.NoError(t, err)

	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	signed, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }), jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	assert.Equal(t, "42", claims.AccountID)
	require.NotNil(t, claims.NotBefore)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, fixed.Unix(), claims.NotBefore.Unix())
	assert.Equal(t, int64(3600), claims.ExpiresAt.Unix()-claims.NotBefore.Unix())
	assert.Empty(t, claims.Issuer)
	assert.Empty(t, claims.Audience)
}

func TestTokenIssuer_NotBeforeIsIssuanceInstant(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret)
	require.NoError(t, err)

	before := time.Now().Truncate(time.Second)
	signed, err := issuer.Issue(7)
	require.NoError(t, err)
	after := time.Now()

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)

	nbf := claims.NotBefore.Time
	assert.False(t, nbf.Before(before))
	assert.False(t, nbf.After(after))
	assert.Equal(t, TokenLifetime, claims.ExpiresAt.Sub(nbf))
}

func TestTokenIssuer_WrongSecretFailsVerification(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret)
	require.NoError(t, err)

	signed, err := issuer.Issue(1)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(signed, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("another-secret-that-is-32-chars!"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}
