package dto

import "github.com/voxlane/console/models"

// CallListRequest narrows a call-history page. Dates are RFC3339 or
// YYYY-MM-DD; when both are absent the flow applies its default window.
type CallListRequest struct {
	CampaignID  string `json:"campaign_id" validate:"required"`
	StartDate   string `json:"start_date" validate:"omitempty"`
	EndDate     string `json:"end_date" validate:"omitempty"`
	Search      string `json:"search" validate:"omitempty,max=255"`
	Status      string `json:"status" validate:"omitempty,max=64"`
	DurationMin *int   `json:"duration_min" validate:"omitempty,min=0"`
	DurationMax *int   `json:"duration_max" validate:"omitempty,min=0"`
	PageSize    int    `json:"page_size" validate:"omitempty,min=1,max=100"`

	// Cursor resumes a forward walk; Sequence guards against stale responses
	// arriving after the filters changed.
	Cursor   string `json:"cursor" validate:"omitempty"`
	Sequence int64  `json:"sequence" validate:"omitempty,min=0"`
}

// CallListResponse is one page of calls, client-sorted, plus paging state.
type CallListResponse struct {
	Calls      []models.Call `json:"calls"`
	NextCursor string        `json:"next_cursor,omitempty"`
	HasMore    bool          `json:"has_more"`
	Sequence   int64         `json:"sequence"`
}

// CallArtifactsResponse is the parsed post-call artifact bundle.
type CallArtifactsResponse struct {
	Summary       string                     `json:"summary,omitempty"`
	Categories    map[string]string          `json:"categories,omitempty"`
	ExtractedData map[string]string          `json:"extracted_data,omitempty"`
	Transcript    []models.TranscriptMessage `json:"transcript,omitempty"`
	Empty         bool                       `json:"empty"`
}

// RateCallRequest submits a star rating for one call.
type RateCallRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// RecordingResponse carries the short-lived signed recording URL.
type RecordingResponse struct {
	URL string `json:"url"`
}

// OutboundCallRequest starts a single outbound call on a campaign.
type OutboundCallRequest struct {
	CampaignID string `json:"campaign_id" validate:"required"`
	To         string `json:"to" validate:"required,e164"`
	From       string `json:"from" validate:"omitempty,e164"`
	CallerName string `json:"caller_name" validate:"omitempty,max=255"`
}
