package models

// Voice is one entry of the provider-scoped TTS voice catalog
type Voice struct {
	VoiceID    string `json:"voice_id"`
	Name       string `json:"name"`
	Language   string `json:"language"`
	Gender     string `json:"gender"`
	Vendor     string `json:"vendor"`
	PreviewURL string `json:"preview_url,omitempty"`
}
