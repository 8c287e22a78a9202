package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("generates 64 character hex string", func(t *testing.T) {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		token1, _ := GenerateToken()
		token2, _ := GenerateToken()
		assert.NotEqual(t, token1, token2)
	})
}

func TestHashToken(t *testing.T) {
	t.Run("returns 64 character hex string", func(t *testing.T) {
		assert.Len(t, HashToken("test-token"), 64)
	})

	t.Run("same input produces same hash", func(t *testing.T) {
		assert.Equal(t, HashToken("test-token"), HashToken("test-token"))
	})

	t.Run("different input produces different hash", func(t *testing.T) {
		assert.NotEqual(t, HashToken("token-1"), HashToken("token-2"))
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret-pass", "not-a-hash"))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", MaskToken("short"))
	assert.Equal(t, "abcdef12****", MaskToken("abcdef1234567890"))
}

func TestValidation(t *testing.T) {
	id, ok := CanonicalUUID("7F1C1C62-43E4-4A57-9A5B-1B0D1C1D1E1F")
	assert.True(t, ok)
	assert.Equal(t, "7f1c1c62-43e4-4a57-9a5b-1b0d1c1d1e1f", id)
	_, ok = CanonicalUUID("")
	assert.False(t, ok)
	_, ok = CanonicalUUID("not-a-uuid")
	assert.False(t, ok)

	assert.True(t, IsValidEnum("", []string{"a"}))
	assert.True(t, IsValidEnum("a", []string{"a", "b"}))
	assert.False(t, IsValidEnum("c", []string{"a", "b"}))

	assert.Equal(t, "spam", NormalizeWord("  SPAM "))
}
