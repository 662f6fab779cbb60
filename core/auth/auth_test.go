package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("placeholder")
	require.NoError(t, err)

	assert.NotEqual(t, "placeholder", hash)
	assert.True(t, VerifyPassword(hash, "placeholder"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}
