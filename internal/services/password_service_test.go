package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService_ValidatePassword(t *testing.T) {
	ps := NewPasswordService(8)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid password", password: "SecurePass123!", wantErr: nil},
		{name: "minimum length", password: "12345678", wantErr: nil},
		{name: "empty password", password: "", wantErr: ErrPasswordEmpty},
		{name: "too short", password: "1234567", wantErr: ErrPasswordTooShort},
		{name: "too long", password: strings.Repeat("a", MaxPasswordLength+1), wantErr: ErrPasswordTooLong},
		{name: "at max length", password: strings.Repeat("a", MaxPasswordLength), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ps.ValidatePassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordService_HashPassword(t *testing.T) {
	ps := NewPasswordService(8)

	hash, err := ps.HashPassword("SecurePass123!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "SecurePass123!", hash)
}

func TestPasswordService_HashPassword_Invalid(t *testing.T) {
	ps := NewPasswordService(8)

	hash, err := ps.HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Empty(t, hash)
}

func TestPasswordService_HashPassword_UniqueSalts(t *testing.T) {
	ps := NewPasswordService(8)

	first, err := ps.HashPassword("SecurePass123!")
	require.NoError(t, err)
	second, err := ps.HashPassword("SecurePass123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordService_ComparePassword(t *testing.T) {
	ps := NewPasswordService(8)

	hash, err := ps.HashPassword("SecurePass123!")
	require.NoError(t, err)

	assert.True(t, ps.ComparePassword("SecurePass123!", hash))
	assert.False(t, ps.ComparePassword("WrongPassword", hash))
	assert.False(t, ps.ComparePassword("SecurePass123!", "not-a-hash"))
}
