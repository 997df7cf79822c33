package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_Bcrypt(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("correct horse")
	require.NoError(t, err)
	second, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash must use a fresh salt")
	assert.True(t, h.Verify("correct horse", first))
	assert.True(t, h.Verify("correct horse", second))
	assert.False(t, h.Verify("wrong horse", first))
}

func TestHasher_BcryptDefaultCost(t *testing.T) {
	h := NewBcryptHasher(10)

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestHasher_Argon2(t *testing.T) {
	h := NewArgon2Hasher()

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	assert.Contains(t, hash, "$argon2id$v=19$")
	assert.True(t, h.Verify("password123", hash))
	assert.False(t, h.Verify("password124", hash))
}

func TestHasher_VerifiesEitherFormat(t *testing.T) {
	argonHash, err := NewArgon2Hasher().Hash("secret-pass")
	require.NoError(t, err)
	bcryptHash, err := NewBcryptHasher(bcrypt.MinCost).Hash("secret-pass")
	require.NoError(t, err)

	assert.True(t, NewBcryptHasher(bcrypt.MinCost).Verify("secret-pass", argonHash))
	assert.True(t, NewArgon2Hasher().Verify("secret-pass", bcryptHash))
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, hash := range []string{
		"",
		"plaintext",
		"$2a$10$short",
		"$argon2id$v=19$m=65536,t=3,p=4$salt",
		"$argon2id$v=19$m=abc,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
	} {
		assert.False(t, h.Verify("anything", hash), "hash %q", hash)
	}
}

func TestHasher_RejectsExcessiveArgon2Parameters(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	longKey := base64.RawStdEncoding.EncodeToString(make([]byte, 4096))

	for _, hash := range []string{
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHQ$aGFzaA",
		"$argon2id$v=19$m=65536,t=4294967295,p=1$c2FsdHNhbHQ$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=255$c2FsdHNhbHQ$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$c2FsdHNhbHQ$" + longKey,
	} {
		assert.False(t, h.Verify("anything", hash), "hash %q", hash)
	}
}
