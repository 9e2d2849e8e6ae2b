package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPasswordCost("demo123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "demo123", hash)

	require.NoError(t, CheckPassword(hash, "demo123"))
	require.ErrorIs(t, CheckPassword(hash, "demo124"), ErrInvalidCredentials)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPasswordCost("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPasswordCost("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("abc")
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	require.ErrorIs(t, CheckPassword("", "whatever"), ErrInvalidCredentials)
}
