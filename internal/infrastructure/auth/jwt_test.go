package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ta7wila/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(42, authorization.RoleMerchant)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, authorization.RoleMerchant, claims.Role)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTService_VerifyRejectsWrongSecret(t *testing.T) {
	pair, err := NewJWTService("secret-a", 15, 7).Generate(1, authorization.RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 15, 7).Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_Refresh(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(7, authorization.RoleAdmin)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.Verify(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)

	// access tokens cannot be used to refresh
	_, err = svc.Refresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("s3curePass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, hasher.Verify("s3curePass", hash))
	assert.Error(t, hasher.Verify("wrongPass1", hash))
}
