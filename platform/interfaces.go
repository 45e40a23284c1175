package platform

import (
	"context"
	"time"

	"github.com/voxlane/console/models"
)

// AuthAPI is the platform's session endpoints. Login exchanges operator
// credentials for a platform bearer token and the operator's profile.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
}

// LoginResult is the platform's successful login payload.
type LoginResult struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	Profile     models.UserProfile `json:"profile"`
}

// CampaignRepository is the remote campaign store.
type CampaignRepository interface {
	List(ctx context.Context) ([]models.Campaign, error)
	ByID(ctx context.Context, campaignID string) (*models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)
	Delete(ctx context.Context, campaignID string) error
	UploadContacts(ctx context.Context, campaignID, fileName string, csvData []byte) error
}

// CallQuery narrows a call-history listing. Zero-valued fields are omitted
// from the request.
type CallQuery struct {
	CampaignID  string
	StartDate   time.Time
	EndDate     time.Time
	PageSize    int
	Cursor      string
	Search      string
	Status      string
	DurationMin *int
	DurationMax *int
}

// OutboundCallRequest starts a single outbound call on a campaign. The
// dynamic variables merge the campaign's prompt variables with the caller's
// name and mobile number so the agent prompt can reference them.
type OutboundCallRequest struct {
	CampaignID       string            `json:"campaign_id"`
	To               string            `json:"to"`
	From             string            `json:"from,omitempty"`
	CallerName       string            `json:"caller_name,omitempty"`
	DynamicVariables map[string]string `json:"dynamic_variables,omitempty"`
}

// CallRepository is the remote call-history store.
type CallRepository interface {
	List(ctx context.Context, q CallQuery) (*models.CallPage, error)
	Artifacts(ctx context.Context, callSid string) (*models.CallArtifacts, error)
	SubmitRating(ctx context.Context, callSid string, rating int) error
	RecordingURL(ctx context.Context, campaignID, callSid string) (string, error)
	Initiate(ctx context.Context, req OutboundCallRequest) error
}

// OrganizationRepository is the remote organization store.
type OrganizationRepository interface {
	List(ctx context.Context) ([]models.Organization, error)
	ByID(ctx context.Context, orgID string) (*models.Organization, error)
	Create(ctx context.Context, org *models.Organization) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) (*models.Organization, error)
	Delete(ctx context.Context, orgID string) error
}

// UserRepository is the remote user store.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	ByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, userID string) error
}

// RoleRepository is the remote role store.
type RoleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
	ByID(ctx context.Context, roleID string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) (*models.Role, error)
	Update(ctx context.Context, role *models.Role) (*models.Role, error)
	Delete(ctx context.Context, roleID string) error
}

// VoiceFilter narrows the vendor voice catalog.
type VoiceFilter struct {
	Vendor   string
	Language string
	Gender   string
	Search   string
}

// VoiceRepository lists TTS voices from the platform's vendor catalog.
type VoiceRepository interface {
	List(ctx context.Context, f VoiceFilter) ([]models.Voice, error)
}
