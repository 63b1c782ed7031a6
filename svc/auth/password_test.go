package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := CheckPassword(hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "secret2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_TooLong(t *testing.T) {
	t.Parallel()

	long := make([]byte, MaxPasswordBytes+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := HashPassword(string(long), bcrypt.MinCost)
	require.Error(t, err)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := CheckPassword("not-a-hash", "secret1")
	require.Error(t, err)
	assert.False(t, ok)
}
