package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/auth"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("secret", 60)

	token, err := tokens.Generate("user-1", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, 1, claims.Level)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("secret", 60)
	other := auth.NewTokenManager("different", 60)

	token, err := tokens.Generate("user-1", 1)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	t.Parallel()

	// Zero TTL: the token is already expired when parsed.
	tokens := auth.NewTokenManager("secret", 0)

	token, err := tokens.Generate("user-1", 1)
	require.NoError(t, err)

	_, err = tokens.Parse(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("secret", 60)
	_, err := tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, auth.CheckPasswordHash("correct horse", hash))
	assert.False(t, auth.CheckPasswordHash("wrong pony", hash))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.Error(t, auth.ValidatePassword("short"))
	assert.NoError(t, auth.ValidatePassword("long enough"))
}
