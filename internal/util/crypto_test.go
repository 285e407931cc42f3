package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestGenerateShortID(t *testing.T) {
	id, err := GenerateShortID(9)
	require.NoError(t, err)
	assert.Len(t, id, 9)

	for _, r := range id {
		assert.Contains(t, base36, string(r))
	}
}

func TestHmacSHA256IsDeterministic(t *testing.T) {
	a := HmacSHA256("secret", "data")
	b := HmacSHA256("secret", "data")
	c := HmacSHA256("other", "data")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual("token", "token"))
	assert.False(t, ConstantTimeEqual("token", "other"))
	assert.False(t, ConstantTimeEqual("token", "token2"))
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("password", string(hash)))
	assert.False(t, CheckPasswordHash("wrong", string(hash)))
	assert.False(t, CheckPasswordHash("password", "not-a-hash"))
}
