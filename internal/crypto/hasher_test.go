package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2a$04$"), "digest must be self-describing, got %q", digest)

	ok, err := h.Verify("correct horse battery staple", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("Correct horse battery staple", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_FreshSalt(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("password123")
	require.NoError(t, err)
	second, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_InvalidInput(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "longer than 72 bytes", input: strings.Repeat("a", 73)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Hash(tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)

			digest, err := h.Hash("correct horse")
			require.NoError(t, err)

			ok, err := h.Verify(tt.input, digest)
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestBcryptHasher_Exactly72Bytes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	password := strings.Repeat("p", 72)

	digest, err := h.Hash(password)
	require.NoError(t, err)

	ok, err := h.Verify(password, digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "plaintext", "$2a$04$short", "$9z$10$xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"} {
		t.Run(digest, func(t *testing.T) {
			ok, err := h.Verify("password123", digest)
			assert.ErrorIs(t, err, ErrMalformedDigest)
			assert.False(t, ok)
		})
	}
}

func TestBcryptHasher_NeedsRehash(t *testing.T) {
	low := NewBcryptHasher(bcrypt.MinCost)
	higher := NewBcryptHasher(bcrypt.MinCost + 1)

	digest, err := low.Hash("password123")
	require.NoError(t, err)

	assert.False(t, low.NeedsRehash(digest))
	assert.True(t, higher.NeedsRehash(digest))
	assert.True(t, low.NeedsRehash("not-a-digest"))
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	h := NewBcryptHasher(100).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	h = NewBcryptHasher(0).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
