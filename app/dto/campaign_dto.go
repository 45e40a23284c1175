package dto

import "github.com/voxlane/console/models"

// StartWizardRequest opens a new wizard draft. CampaignID is set only in edit
// mode and selects the campaign to hydrate from. Ids are generated as v4
// UUIDs but remain operator-editable strings, so the only constraint here is
// that edit mode names one.
type StartWizardRequest struct {
	Mode       string `json:"mode" validate:"required,oneof=create edit"`
	CampaignID string `json:"campaign_id" validate:"required_if=Mode edit,max=255"`
}

// WizardDraftResponse is the wizard state returned after every mutation.
type WizardDraftResponse struct {
	Draft      *models.WizardDraft `json:"draft"`
	CanAdvance bool                `json:"can_advance"`
	CanSubmit  bool                `json:"can_submit"`
}

// UpdateStepRequest applies a partial edit to the draft's current step. Only
// fields belonging to the named step are read.
type UpdateStepRequest struct {
	Step int `json:"step" validate:"min=0,max=5"`

	// Basics
	Name               *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Direction          *string `json:"direction,omitempty" validate:"omitempty,oneof=INBOUND OUTBOUND"`
	OrgID              *string `json:"org_id,omitempty"`
	TelephonicProvider *string `json:"telephonic_provider,omitempty"`
	CallbackEndpoint   *string `json:"callback_endpoint,omitempty" validate:"omitempty,url"`

	// Prompt
	SystemPrompt     *string          `json:"system_prompt,omitempty"`
	PromptVariables  []models.KVEntry `json:"prompt_variables,omitempty"`
	KnowledgeBaseURL *string          `json:"knowledge_base_url,omitempty" validate:"omitempty,url"`
	LLMProvider      *string          `json:"llm_provider,omitempty"`
	LLMModel         *string          `json:"llm_model,omitempty"`
	Temperature      *float64         `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`
	MaxCallDuration  *int             `json:"max_call_duration,omitempty" validate:"omitempty,min=30,max=3600"`

	// Voice
	TTSVendor   *string `json:"tts_vendor,omitempty"`
	TTSLanguage *string `json:"tts_language,omitempty"`
	TTSGender   *string `json:"tts_gender,omitempty"`
	VoiceID     *string `json:"voice_id,omitempty"`
	STTVendor   *string `json:"stt_vendor,omitempty"`

	// Speech settings
	Interruption       *bool   `json:"interruption,omitempty"`
	AmbientSound       *bool   `json:"ambient_sound,omitempty"`
	AmbientSoundType   *string `json:"ambient_sound_type,omitempty"`
	AmbientSoundVolume *int    `json:"ambient_sound_volume,omitempty" validate:"omitempty,min=0,max=100"`
	IdleReminderSec    *int    `json:"idle_reminder_interval,omitempty"`
	IdleCutoffSec      *int    `json:"idle_duration_cutoff,omitempty"`

	// Post-call actions
	CategoryPrompt   *string          `json:"category_prompt,omitempty"`
	CategoryFields   []models.KVEntry `json:"category_fields,omitempty"`
	ExtractionPrompt *string          `json:"extraction_prompt,omitempty"`
	ExtractionFields []models.KVEntry `json:"extraction_fields,omitempty"`
}

// ListVoicesRequest filters the vendor voice catalog for the voice step.
type ListVoicesRequest struct {
	Vendor   string `query:"vendor"`
	Language string `query:"language"`
	Gender   string `query:"gender"`
	Search   string `query:"search"`
}

// SubmitWizardResponse returns the campaign the platform persisted.
type SubmitWizardResponse struct {
	Campaign *models.Campaign `json:"campaign"`
}

// CampaignListResponse wraps the campaign collection.
type CampaignListResponse struct {
	Campaigns []models.Campaign `json:"campaigns"`
	Total     int               `json:"total"`
}

// DeleteCampaignRequest requires an explicit acknowledgement before the
// campaign is removed upstream.
type DeleteCampaignRequest struct {
	Confirm bool `json:"confirm" validate:"required,eq=true"`
}

// UploadContactsResponse reports a contact list upload.
type UploadContactsResponse struct {
	FileName string `json:"file_name"`
	Uploaded bool   `json:"uploaded"`
}
