// Package middleware provides HTTP middleware for authentication and
// observability.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/app/services"
)

// Locals keys set by the auth middleware.
const (
	LocalSessionID = "session_id"
)

// AuthMiddleware validates console session tokens and resolves the session
// record behind them.
type AuthMiddleware struct {
	tokens   services.TokenService
	sessions services.SessionStore
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(tokens services.TokenService, sessions services.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions}
}

// RequireSession rejects requests without a live session. On success the
// session id lands in Locals; handlers copy it onto the request context, where
// the platform client picks it up for bearer injection.
func (m *AuthMiddleware) RequireSession() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return unauthorized(c, "MISSING_TOKEN", "authorization token is required")
		}

		claims, err := m.tokens.ValidateSessionToken(token)
		if err != nil {
			if err == services.ErrTokenExpired {
				return unauthorized(c, "TOKEN_EXPIRED", "session token has expired")
			}
			return unauthorized(c, "TOKEN_INVALID", "session token is invalid")
		}

		// The token may outlive the session record when the platform forced a
		// purge. A valid token over a missing record is still a dead session.
		if _, err := m.sessions.Get(c.Context(), claims.SessionID); err != nil {
			return unauthorized(c, "SESSION_EXPIRED", "session has expired, please log in again")
		}

		c.Locals(LocalSessionID, claims.SessionID)
		return c.Next()
	}
}

// GetSessionID extracts the session id set by RequireSession.
func GetSessionID(c fiber.Ctx) (string, bool) {
	id, ok := c.Locals(LocalSessionID).(string)
	return id, ok && id != ""
}

func extractBearerToken(c fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func unauthorized(c fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: code},
	})
}
