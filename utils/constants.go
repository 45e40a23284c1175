package utils

import (
	"context"
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for console session tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// SessionTimeout is the default operator session timeout (24 hours)
	SessionTimeout = 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Call history constants
const (
	// DefaultCallWindow is the date window applied when the operator picks no range (last 2 days)
	DefaultCallWindow = 48 * time.Hour

	// DefaultCallPageSize is the page size forwarded to the platform call list endpoint
	DefaultCallPageSize = 20

	// MaxRating and MinRating bound the per-call star rating
	MinRating = 1
	MaxRating = 5
)

// Wizard tuning choices. The platform only accepts these fixed values, so the
// wizard rejects anything outside the sets rather than forwarding it.
var (
	IdleReminderSeconds = []int{3, 5, 7, 9}
	IdleCutoffSeconds   = []int{5, 10, 20, 30}
)

// Context keys used for request-scoped values
type contextKey string

const (
	RequestIDKey  contextKey = "request_id"
	SessionIDKey  contextKey = "session_id"
	UserAgentKey  contextKey = "user_agent"
	IPAddressKey  contextKey = "ip_address"
	EndpointKey   contextKey = "endpoint"
	TimeoutKey    contextKey = "timeout"
	CancelFuncKey contextKey = "cancel_func"
)

// SessionIDFromContext extracts the authenticated session ID placed on the
// request context by the auth middleware.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok && id != ""
}

// WithSessionID returns a context carrying the given session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}
