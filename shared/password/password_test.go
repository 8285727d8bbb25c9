package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentwheels/shared/password"
)

func TestHash(t *testing.T) {
	hash, err := password.Hash("password")
	require.NoError(t, err)

	assert.NotEqual(t, "password", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)
}

func TestHash_Empty(t *testing.T) {
	hash, err := password.Hash("")

	assert.ErrorIs(t, err, password.ErrEmptyPassword)
	assert.Empty(t, hash)
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("secret123")
	require.NoError(t, err)

	second, err := password.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{"matching", "secret123", hash, nil},
		{"mismatch", "secret124", hash, password.ErrInvalidPassword},
		{"empty password", "", hash, password.ErrInvalidPassword},
		{"empty hash", "secret123", "", password.ErrInvalidPassword},
		{"malformed hash", "secret123", "not-a-bcrypt-hash", password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
