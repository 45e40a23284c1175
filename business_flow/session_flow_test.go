package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/app/services"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
	"github.com/voxlane/console/utils"
)

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()
	svc, err := services.NewTokenService("test-secret-key-for-jwt-signing-32-chars", time.Hour, "console-test")
	require.NoError(t, err)
	return svc
}

func TestLoginStoresSessionAndReturnsConsoleToken(t *testing.T) {
	auth := &fakeAuthAPI{result: &platform.LoginResult{
		AccessToken: "platform-bearer-token",
		TokenType:   "bearer",
		Profile:     models.UserProfile{Name: "Dana", Email: "dana@example.com"},
	}}
	store := services.NewMemorySessionStore()
	tokens := newTestTokenService(t)
	flow := NewSessionFlow(auth, store, tokens)

	resp, err := flow.Login(context.Background(), &dto.LoginRequest{
		Email:    "dana@example.com",
		Password: "hunter2!",
	}, NewClientMetadata("203.0.113.9", "go-test"))
	require.NoError(t, err)

	assert.Equal(t, "dana@example.com", auth.loginEmail)
	assert.Equal(t, "dana@example.com", resp.Profile.Email)
	assert.NotEqual(t, "platform-bearer-token", resp.Token,
		"the platform bearer token must never reach the client")

	// The console token names a session record holding the bearer token.
	claims, err := tokens.ValidateSessionToken(resp.Token)
	require.NoError(t, err)
	session, err := store.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "platform-bearer-token", session.Token)
	assert.Equal(t, "Dana", session.Profile.Name)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := &fakeAuthAPI{loginErr: platform.ErrUnauthorized}
	flow := NewSessionFlow(auth, services.NewMemorySessionStore(), newTestTokenService(t))

	_, err := flow.Login(context.Background(), &dto.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong",
	}, nil)
	assert.True(t, IsInvalidCredentials(err))
}

func TestCurrentSession(t *testing.T) {
	store := services.NewMemorySessionStore()
	require.NoError(t, store.Save(context.Background(), &models.Session{
		ID:      "sess-1",
		Token:   "bearer",
		Profile: models.UserProfile{Name: "Dana"},
	}))
	flow := NewSessionFlow(&fakeAuthAPI{}, store, newTestTokenService(t))

	resp, err := flow.CurrentSession(utils.WithSessionID(context.Background(), "sess-1"))
	require.NoError(t, err)
	assert.Equal(t, "Dana", resp.Profile.Name)

	_, err = flow.CurrentSession(utils.WithSessionID(context.Background(), "sess-gone"))
	assert.True(t, IsSessionNotFound(err))

	_, err = flow.CurrentSession(context.Background())
	assert.True(t, IsSessionNotFound(err))
}

func TestLogoutPurgesEvenWhenPlatformFails(t *testing.T) {
	store := services.NewMemorySessionStore()
	require.NoError(t, store.Save(context.Background(), &models.Session{ID: "sess-1", Token: "bearer"}))

	auth := &fakeAuthAPI{logoutErr: errTransport}
	flow := NewSessionFlow(auth, store, newTestTokenService(t))

	err := flow.Logout(utils.WithSessionID(context.Background(), "sess-1"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, auth.logoutHits)

	_, err = store.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, services.ErrSessionMissing)
}
