package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("0123456789abcdef", time.Minute)

	signed, err := tokens.Generate("admin", RoleAdmin)
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, RoleAdmin, claims["role"])
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("0123456789abcdef", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }
	signed, err := tokens.Generate("admin", RoleAdmin)
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_WrongSecret(t *testing.T) {
	signed, err := NewTokens("0123456789abcdef", time.Minute).Generate("admin", RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokens("fedcba9876543210", time.Minute).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdmin_Verify(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	admin := NewAdmin("admin", hash)

	assert.NoError(t, admin.Verify("admin", "secret"))
	assert.ErrorIs(t, admin.Verify("admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, admin.Verify("root", "secret"), ErrInvalidCredentials)
	assert.ErrorIs(t, NewAdmin("admin", "").Verify("admin", ""), ErrInvalidCredentials)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("abc")
	assert.Error(t, err)
}
