// Package models defines the entity shapes exchanged with the voice platform API.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CampaignDirection represents the calling direction of a campaign
type CampaignDirection string

const (
	CampaignDirectionInbound  CampaignDirection = "INBOUND"
	CampaignDirectionOutbound CampaignDirection = "OUTBOUND"
)

// CampaignState represents the lifecycle state of a campaign
type CampaignState string

const (
	CampaignStateTrial    CampaignState = "TRIAL"
	CampaignStateActive   CampaignState = "ACTIVE"
	CampaignStateInactive CampaignState = "INACTIVE"
)

// TTSConfig holds the text-to-speech voice configuration of a campaign
type TTSConfig struct {
	Gender   string `json:"gender"`
	Language string `json:"language"`
	VoiceID  string `json:"voice_id"`
	Vendor   string `json:"vendor"`
}

// STTConfig holds the speech-to-text configuration of a campaign
type STTConfig struct {
	Vendor string `json:"vendor"`
}

// PromptJSON holds the conversational flow configuration nested under the LLM
// config. Field names are camelCase on the wire; the platform API defined them
// that way and round-trips them verbatim.
type PromptJSON struct {
	Context         string            `json:"context"`
	PromptVariables map[string]string `json:"promptVariables"`
	KnowledgeBase   string            `json:"knowledgeBase,omitempty"`
}

// LLMConfig holds the language-model configuration of a campaign
type LLMConfig struct {
	Provider        string     `json:"provider"`
	Model           string     `json:"model"`
	Temperature     float64    `json:"temperature"`
	MaxCallDuration int        `json:"maxCallDuration"`
	PromptJSON      PromptJSON `json:"promptJson"`
}

// SpeechSetting holds call tuning toggles collected on the wizard's second step
type SpeechSetting struct {
	Interruption       bool   `json:"interruption"`
	AmbientSound       bool   `json:"ambient_sound"`
	AmbientSoundType   string `json:"ambient_sound_type,omitempty"`
	AmbientSoundVolume int    `json:"ambient_sound_volume,omitempty"`
	IdleReminderSec    int    `json:"idle_reminder_interval,omitempty"`
	IdleCutoffSec      int    `json:"idle_duration_cutoff,omitempty"`
}

// ActionSection is one independently managed post-call extraction section:
// a system prompt plus a mapping of field key to description.
type ActionSection struct {
	SystemPrompt string            `json:"system_prompt"`
	Fields       map[string]string `json:"fields"`
}

// PostCallActions groups the two post-call sections of a campaign
type PostCallActions struct {
	Categories    ActionSection `json:"categories"`
	DataExtracted ActionSection `json:"data_extracted"`
}

// KnowledgeBase references external context attached to a campaign
type KnowledgeBase struct {
	URL  string `json:"url,omitempty"`
	File string `json:"file,omitempty"`
}

// Campaign is the full campaign configuration as the platform API stores it.
// Writes always round-trip the entire object; there is no partial patch.
type Campaign struct {
	ID                 string            `json:"id,omitempty"`
	CampaignID         string            `json:"campaign_id"`
	Name               string            `json:"name"`
	Direction          CampaignDirection `json:"direction"`
	State              CampaignState     `json:"state"`
	OrgID              string            `json:"org_id"`
	TelephonicProvider string            `json:"telephonic_provider"`
	IsActive           bool              `json:"is_active"`
	TTS                TTSConfig         `json:"tts"`
	STT                STTConfig         `json:"stt"`
	LLM                LLMConfig         `json:"llm"`
	SpeechSetting      SpeechSetting     `json:"speech_setting"`
	PostCallActions    PostCallActions   `json:"post_call_actions"`
	KnowledgeBase      KnowledgeBase     `json:"knowledge_base"`
	CallbackEndpoint   string            `json:"callback_endpoint,omitempty"`
	CreatedAt          *time.Time        `json:"created_at,omitempty"`
	UpdatedAt          *time.Time        `json:"updated_at,omitempty"`
}

// EnsureCampaignID fills CampaignID with a fresh v4 UUID when it is absent.
// The platform requires a non-empty client-generated identifier; uniqueness
// is the server's problem.
func (c *Campaign) EnsureCampaignID() {
	if strings.TrimSpace(c.CampaignID) == "" {
		c.CampaignID = uuid.NewString()
	}
}

// IsValidDirection reports whether d is one of the accepted campaign directions
func IsValidDirection(d CampaignDirection) bool {
	return d == CampaignDirectionInbound || d == CampaignDirectionOutbound
}

// IsValidState reports whether s is one of the accepted campaign states
func IsValidState(s CampaignState) bool {
	switch s {
	case CampaignStateTrial, CampaignStateActive, CampaignStateInactive:
		return true
	}
	return false
}
