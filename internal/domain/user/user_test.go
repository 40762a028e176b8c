package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uservo "ta7wila/internal/domain/user/valueobjects"
	"ta7wila/internal/shared/authorization"
)

func mustEmail(t *testing.T, raw string) uservo.Email {
	t.Helper()
	e, err := uservo.NewEmail(raw)
	require.NoError(t, err)
	return e
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(mustEmail(t, "Owner@Example.COM"), "$2a$10$hash", "Mona", "01012345678", authorization.RoleMerchant)
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", u.Email().String())
	assert.Equal(t, StatusActive, u.Status())
	assert.True(t, u.CanLogin())
	assert.False(t, u.IsAdmin())
	assert.Nil(t, u.LastLoginAt())
}

func TestNewUser_Validation(t *testing.T) {
	email := mustEmail(t, "a@b.co")

	tests := []struct {
		name    string
		email   uservo.Email
		hash    string
		uname   string
		role    authorization.UserRole
		wantErr string
	}{
		{"zero email", uservo.Email{}, "h", "Mona", authorization.RoleMerchant, "email is required"},
		{"empty hash", email, "", "Mona", authorization.RoleMerchant, "password hash is required"},
		{"blank name", email, "h", "   ", authorization.RoleMerchant, "name is required"},
		{"bad role", email, "h", "Mona", authorization.UserRole("root"), "invalid role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, tt.hash, tt.uname, "", tt.role)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUser_SuspendBlocksLogin(t *testing.T) {
	u, err := NewUser(mustEmail(t, "a@b.co"), "h", "Mona", "", authorization.RoleEmployee)
	require.NoError(t, err)

	u.Suspend()
	assert.False(t, u.CanLogin())
	u.Activate()
	assert.True(t, u.CanLogin())
}

func TestUser_RecordLogin(t *testing.T) {
	u, err := NewUser(mustEmail(t, "a@b.co"), "h", "Mona", "", authorization.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	u.RecordLogin()
	assert.NotNil(t, u.LastLoginAt())
}

func TestEmailValidation(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"user@example.com", false},
		{"  USER@EXAMPLE.COM ", false},
		{"user+tag@sub.example.co", false},
		{"", true},
		{"not-an-email", true},
		{"a@b", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := uservo.NewEmail(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlainPassword(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"ok", "s3curePass", false},
		{"too short", "a1b2c3", true},
		{"letters only", "passwordpass", true},
		{"digits only", "1234567890", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uservo.NewPlainPassword(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
