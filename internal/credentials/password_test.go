package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	first, err := HashPassword("pw1")
	require.NoError(t, err)
	second, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", first)
	assert.NotEqual(t, first, second, "salt must differ between calls")
	assert.True(t, VerifyPassword("pw1", first))
	assert.True(t, VerifyPassword("pw1", second))
}

func TestVerifyPassword(t *testing.T) {
	digest, err := HashPassword("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		digest    string
		want      bool
	}{
		{name: "match", plaintext: "correct horse", digest: digest, want: true},
		{name: "wrong password", plaintext: "battery staple", digest: digest, want: false},
		{name: "empty digest", plaintext: "correct horse", digest: "", want: false},
		{name: "malformed digest", plaintext: "correct horse", digest: "$2a$10$short", want: false},
		{name: "plaintext stored as digest", plaintext: "correct horse", digest: "correct horse", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, VerifyPassword(tt.plaintext, tt.digest))
			})
		})
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("p", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}
