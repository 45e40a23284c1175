package businessflow

import (
	"errors"

	"github.com/voxlane/console/platform"
)

// ClientMetadata carries request-scoped client context into the flows for
// audit logging.
type ClientMetadata struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// NewClientMetadata creates client metadata from request attributes.
func NewClientMetadata(ip, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ip,
		UserAgent: userAgent,
	}
}

// mapPlatformError converts transport-level failures into business errors.
// ErrUnauthorized means the upstream already purged the session; the flows
// report it as an expired session so the handler layer returns 401 and the
// client restarts from login.
func mapPlatformError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, platform.ErrUnauthorized) {
		return NewBusinessError("SESSION_EXPIRED", "session expired", ErrSessionExpired)
	}
	if notFound != nil && errors.Is(err, platform.ErrNotFound) {
		return NewBusinessError("NOT_FOUND", notFound.Error(), notFound)
	}
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return NewBusinessError("PLATFORM_ERROR", apiErr.Detail, err)
	}
	return err
}
