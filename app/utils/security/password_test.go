package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small parameters keep the test suite fast; sanitize() guarantees they
// stay within argon2's legal range.
func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	hasher := testHasher()

	hash, err := hasher.Hash("pw1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "pw1")

	ok, err := hasher.Verify(hash, "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_SaltRandomness(t *testing.T) {
	hasher := testHasher()

	first, err := hasher.Hash("same-secret")
	require.NoError(t, err)

	second, err := hasher.Hash("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "identical input must produce distinct hashes")

	for _, hash := range []string{first, second} {
		ok, err := hasher.Verify(hash, "same-secret")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestArgon2Hasher_Verify_MalformedHash(t *testing.T) {
	hasher := testHasher()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "plaintext", hash: "not-a-hash"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA"},
		{name: "bad version", hash: "$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA"},
		{name: "bad params", hash: "$argon2id$v=19$m=abc$c2FsdA$aGFzaA"},
		{name: "bad base64 salt", hash: "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify(tt.hash, "whatever")
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestArgon2Hasher_VerifyAcrossParameterChanges(t *testing.T) {
	// A hash produced under old parameters must stay verifiable because the
	// PHC string is self-describing.
	old := NewArgon2Hasher(Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	hash, err := old.Hash("pw1")
	require.NoError(t, err)

	current := NewArgon2Hasher(Argon2Params{Memory: 16 * 1024, Iterations: 2, Parallelism: 2, SaltLength: 16, KeyLength: 32})
	ok, err := current.Verify(hash, "pw1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2Params_Sanitize(t *testing.T) {
	p := Argon2Params{}.sanitize()

	assert.GreaterOrEqual(t, p.Memory, uint32(8*1024))
	assert.GreaterOrEqual(t, p.Iterations, uint32(1))
	assert.GreaterOrEqual(t, p.Parallelism, uint8(1))
	assert.GreaterOrEqual(t, p.SaltLength, uint32(8))
	assert.GreaterOrEqual(t, p.KeyLength, uint32(16))
}
