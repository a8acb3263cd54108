package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, CheckPassword(hash, "correct-horse"))
	assert.False(t, CheckPassword(hash, "wrong-horse"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPassword_TooLong(t *testing.T) {
	// bcrypt refuses inputs above 72 bytes.
	_, err := HashPassword(strings.Repeat("x", 80))
	assert.Error(t, err)
}
