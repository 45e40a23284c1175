// Package services provides technical concerns around the console's session
// machinery: signed session tokens and the redis-backed session and wizard
// draft stores.
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTokenService() (TokenService, error) {
	return NewTokenService(
		"test-secret-key-for-jwt-signing-32-chars",
		time.Hour,
		"console-test",
	)
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		secretKey   string
		expectError bool
	}{
		{
			name:        "valid configuration",
			secretKey:   "test-secret-key-for-jwt-signing-32-chars",
			expectError: false,
		},
		{
			name:        "missing secret key",
			secretKey:   "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewTokenService(tt.secretKey, time.Hour, "console-test")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, service)
			}
		})
	}
}

func TestGenerateAndValidateSessionToken(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	token, err := service.GenerateSessionToken("sess-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", claims.SessionID)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateSessionTokenRejectsGarbage(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}

func TestValidateSessionTokenRejectsWrongKey(t *testing.T) {
	signer, err := createTestTokenService()
	require.NoError(t, err)
	verifier, err := NewTokenService("another-secret-key-of-sufficient-len", time.Hour, "console-test")
	require.NoError(t, err)

	token, err := signer.GenerateSessionToken("sess-123")
	require.NoError(t, err)

	_, err = verifier.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateSessionTokenRejectsExpired(t *testing.T) {
	service, err := NewTokenService("test-secret-key-for-jwt-signing-32-chars", -time.Minute, "console-test")
	require.NoError(t, err)

	token, err := service.GenerateSessionToken("sess-123")
	require.NoError(t, err)

	_, err = service.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIDsAreUnique(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	a, err := service.GenerateSessionToken("sess-123")
	require.NoError(t, err)
	b, err := service.GenerateSessionToken("sess-123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
