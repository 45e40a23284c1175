package businessflow

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/app/services"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
	"github.com/voxlane/console/utils"
)

// SessionFlow handles the operator session lifecycle: login against the
// platform, profile lookup, and logout with a full local purge.
type SessionFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	CurrentSession(ctx context.Context) (*dto.SessionResponse, error)
	Logout(ctx context.Context, metadata *ClientMetadata) error
}

// SessionFlowImpl implements SessionFlow.
type SessionFlowImpl struct {
	auth     platform.AuthAPI
	sessions services.SessionStore
	tokens   services.TokenService
}

// NewSessionFlow creates a new session flow.
func NewSessionFlow(auth platform.AuthAPI, sessions services.SessionStore, tokens services.TokenService) SessionFlow {
	return &SessionFlowImpl{
		auth:     auth,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Login exchanges credentials for a platform bearer token, stores it in a new
// session record, and returns a console token naming that record. The bearer
// token itself never reaches the client.
func (s *SessionFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	result, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, platform.ErrUnauthorized) {
			return nil, NewBusinessError("INVALID_CREDENTIALS", "invalid email or password", ErrInvalidCredentials)
		}
		return nil, mapPlatformError(err, nil)
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Token:     result.AccessToken,
		Profile:   result.Profile,
		CreatedAt: utils.UTCNow(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	consoleToken, err := s.tokens.GenerateSessionToken(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if metadata != nil {
		log.Printf("session opened for %s from %s", result.Profile.Email, metadata.IPAddress)
	}

	return &dto.LoginResponse{
		Token:   consoleToken,
		Profile: result.Profile,
	}, nil
}

// CurrentSession returns the profile stored at login time.
func (s *SessionFlowImpl) CurrentSession(ctx context.Context) (*dto.SessionResponse, error) {
	sessionID, ok := utils.SessionIDFromContext(ctx)
	if !ok {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "no active session", ErrSessionNotFound)
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, services.ErrSessionMissing) {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "no active session", ErrSessionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Profile: session.Profile}, nil
}

// Logout tells the platform goodbye on a best-effort basis and purges the
// local session record unconditionally. A platform failure never leaves a
// half-dead session behind.
func (s *SessionFlowImpl) Logout(ctx context.Context, metadata *ClientMetadata) error {
	sessionID, ok := utils.SessionIDFromContext(ctx)
	if !ok {
		return NewBusinessError("SESSION_NOT_FOUND", "no active session", ErrSessionNotFound)
	}

	if err := s.auth.Logout(ctx); err != nil && !errors.Is(err, platform.ErrUnauthorized) {
		log.Printf("platform logout failed, purging locally anyway: %v", err)
	}

	return s.sessions.Purge(ctx, sessionID)
}
