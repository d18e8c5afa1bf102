package auth

import (
	"autoDetailing/internal/models"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

var secret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	user := models.User{ID: "user-1", Email: "jane@example.com", Role: models.RoleAdmin}

	token, err := GenerateToken(user, "sess-1", secret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	got := claims.User()
	assert.Equal(t, "jane", got.DisplayName)
	assert.True(t, got.IsAdmin())
}

func TestParseToken_Invalid(t *testing.T) {
	user := models.User{ID: "user-1", Email: "jane@example.com", Role: models.RoleCustomer}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken(user, "sess-1", secret, time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = ParseToken(token, []byte("other"))
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateToken(user, "sess-1", secret, time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = ParseToken(token, secret)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("missing session id", func(t *testing.T) {
		token, err := GenerateToken(user, "", secret, time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = ParseToken(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken("not-a-jwt", secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "hunter22"))
	assert.ErrorIs(t, CheckPassword(hash, "hunter23"), ErrPasswordMismatch)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("p", MaxPasswordBytes))
	require.NoError(t, err)

	_, err = HashPassword(strings.Repeat("p", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
