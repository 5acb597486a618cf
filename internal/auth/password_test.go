package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	// Salted: hashing the same input twice differs.
	other, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		hash      string
		want      bool
	}{
		{name: "correct password", plaintext: "password123", hash: hash, want: true},
		{name: "wrong password", plaintext: "password124", hash: hash, want: false},
		{name: "empty password", plaintext: "", hash: hash, want: false},
		{name: "malformed hash", plaintext: "password123", hash: "not-a-bcrypt-hash", want: false},
		{name: "empty hash", plaintext: "password123", hash: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.plaintext, tt.hash))
		})
	}
}
