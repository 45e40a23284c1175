// Package businessflow contains the core business logic and use cases for the
// console's session, resource management, wizard, call history, and export
// workflows.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Session-related errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPlatformRejected   = errors.New("platform rejected the session token")

	// Campaign-related errors
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignNameRequired = errors.New("campaign name is required")
	ErrInvalidDirection     = errors.New("campaign direction must be INBOUND or OUTBOUND")
	ErrInvalidCampaignState = errors.New("invalid campaign state")

	// Wizard-related errors
	ErrDraftNotFound       = errors.New("wizard draft not found")
	ErrStepOutOfRange      = errors.New("wizard step out of range")
	ErrStepIncomplete      = errors.New("current wizard step is incomplete")
	ErrDraftNotHydrated    = errors.New("wizard draft is not hydrated yet")
	ErrVoiceNotSelected    = errors.New("a voice must be selected")
	ErrPromptRequired      = errors.New("a system prompt is required")
	ErrOrganizationUnset   = errors.New("an organization must be selected")
	ErrProviderUnset       = errors.New("a telephony provider must be selected")

	// Call history errors
	ErrCallNotFound          = errors.New("call not found")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
	ErrPhoneNumberRequired   = errors.New("destination phone number is required")
	ErrRecordingUnavailable  = errors.New("recording is not available for this call")

	// Organization-related errors
	ErrOrganizationNotFound     = errors.New("organization not found")
	ErrOrganizationNameRequired = errors.New("organization name is required")

	// User-related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailRequired = errors.New("user email is required")
	ErrPasswordRequired  = errors.New("password is required for new users")

	// Role-related errors
	ErrRoleNotFound     = errors.New("role not found")
	ErrRoleNameRequired = errors.New("role name is required")
	ErrSystemRole       = errors.New("system roles cannot be modified or deleted")

	// Export errors
	ErrNothingToExport = errors.New("nothing to export")
	ErrReportTooLarge  = errors.New("report exceeds the maximum call count")

	// Confirmation errors
	ErrConfirmationRequired = errors.New("destructive action requires confirmation")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsPlatformRejected(err error) bool {
	return errors.Is(err, ErrPlatformRejected)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsCampaignNameRequired(err error) bool {
	return errors.Is(err, ErrCampaignNameRequired)
}

func IsInvalidDirection(err error) bool {
	return errors.Is(err, ErrInvalidDirection)
}

func IsInvalidCampaignState(err error) bool {
	return errors.Is(err, ErrInvalidCampaignState)
}

func IsDraftNotFound(err error) bool {
	return errors.Is(err, ErrDraftNotFound)
}

func IsStepOutOfRange(err error) bool {
	return errors.Is(err, ErrStepOutOfRange)
}

func IsStepIncomplete(err error) bool {
	return errors.Is(err, ErrStepIncomplete)
}

func IsDraftNotHydrated(err error) bool {
	return errors.Is(err, ErrDraftNotHydrated)
}

func IsVoiceNotSelected(err error) bool {
	return errors.Is(err, ErrVoiceNotSelected)
}

func IsPromptRequired(err error) bool {
	return errors.Is(err, ErrPromptRequired)
}

func IsOrganizationUnset(err error) bool {
	return errors.Is(err, ErrOrganizationUnset)
}

func IsProviderUnset(err error) bool {
	return errors.Is(err, ErrProviderUnset)
}

func IsCallNotFound(err error) bool {
	return errors.Is(err, ErrCallNotFound)
}

func IsInvalidRating(err error) bool {
	return errors.Is(err, ErrInvalidRating)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}

func IsPhoneNumberRequired(err error) bool {
	return errors.Is(err, ErrPhoneNumberRequired)
}

func IsRecordingUnavailable(err error) bool {
	return errors.Is(err, ErrRecordingUnavailable)
}

func IsOrganizationNotFound(err error) bool {
	return errors.Is(err, ErrOrganizationNotFound)
}

func IsOrganizationNameRequired(err error) bool {
	return errors.Is(err, ErrOrganizationNameRequired)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsUserEmailRequired(err error) bool {
	return errors.Is(err, ErrUserEmailRequired)
}

func IsPasswordRequired(err error) bool {
	return errors.Is(err, ErrPasswordRequired)
}

func IsRoleNotFound(err error) bool {
	return errors.Is(err, ErrRoleNotFound)
}

func IsRoleNameRequired(err error) bool {
	return errors.Is(err, ErrRoleNameRequired)
}

func IsSystemRole(err error) bool {
	return errors.Is(err, ErrSystemRole)
}

func IsNothingToExport(err error) bool {
	return errors.Is(err, ErrNothingToExport)
}

func IsReportTooLarge(err error) bool {
	return errors.Is(err, ErrReportTooLarge)
}

func IsConfirmationRequired(err error) bool {
	return errors.Is(err, ErrConfirmationRequired)
}
