package businessflow

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/platform"
	"github.com/voxlane/console/utils"
)

// CallHistoryFlow drives the call-history browser: filtered cursor paging,
// artifact inspection, recordings, ratings, and single outbound dials.
type CallHistoryFlow interface {
	ListCalls(ctx context.Context, req *dto.CallListRequest) (*dto.CallListResponse, error)
	GetArtifacts(ctx context.Context, callSid string) (*dto.CallArtifactsResponse, error)
	GetRecordingURL(ctx context.Context, campaignID, callSid string) (*dto.RecordingResponse, error)
	RateCall(ctx context.Context, callSid string, req *dto.RateCallRequest) error
	InitiateCall(ctx context.Context, req *dto.OutboundCallRequest, metadata *ClientMetadata) error
}

// CallHistoryFlowImpl implements CallHistoryFlow.
type CallHistoryFlowImpl struct {
	calls           platform.CallRepository
	campaigns       platform.CampaignRepository
	defaultPageSize int
}

// NewCallHistoryFlow creates a new call history flow.
func NewCallHistoryFlow(calls platform.CallRepository, campaigns platform.CampaignRepository, defaultPageSize int) CallHistoryFlow {
	if defaultPageSize <= 0 {
		defaultPageSize = utils.DefaultCallPageSize
	}
	return &CallHistoryFlowImpl{
		calls:           calls,
		campaigns:       campaigns,
		defaultPageSize: defaultPageSize,
	}
}

// ListCalls fetches one page of calls. The page is re-sorted newest first
// before it goes back out: the platform's ordering drifts when records carry
// inconsistent timestamp fields. The request's sequence number is echoed so
// the client can drop responses that arrive after the filters changed.
func (s *CallHistoryFlowImpl) ListCalls(ctx context.Context, req *dto.CallListRequest) (*dto.CallListResponse, error) {
	query, err := buildCallQuery(req, s.defaultPageSize)
	if err != nil {
		return nil, err
	}

	page, err := s.calls.List(ctx, *query)
	if err != nil {
		return nil, mapPlatformError(err, ErrCampaignNotFound)
	}

	calls := page.Calls
	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].SortTimestamp() > calls[j].SortTimestamp()
	})

	return &dto.CallListResponse{
		Calls:      calls,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
		Sequence:   req.Sequence,
	}, nil
}

// GetArtifacts fetches and parses the post-call bundle. A call with no
// artifacts yields an explicitly empty response rather than an error.
func (s *CallHistoryFlowImpl) GetArtifacts(ctx context.Context, callSid string) (*dto.CallArtifactsResponse, error) {
	artifacts, err := s.calls.Artifacts(ctx, callSid)
	if err != nil {
		return nil, mapPlatformError(err, ErrCallNotFound)
	}
	if artifacts.Empty() {
		return &dto.CallArtifactsResponse{Empty: true}, nil
	}

	return &dto.CallArtifactsResponse{
		Summary:       artifacts.Summary,
		Categories:    parseEmbeddedJSON(artifacts.Category),
		ExtractedData: parseEmbeddedJSON(artifacts.ExtractedData),
		Transcript:    artifacts.Transcription.Messages,
	}, nil
}

func (s *CallHistoryFlowImpl) GetRecordingURL(ctx context.Context, campaignID, callSid string) (*dto.RecordingResponse, error) {
	url, err := s.calls.RecordingURL(ctx, campaignID, callSid)
	if err != nil {
		return nil, mapPlatformError(err, ErrRecordingUnavailable)
	}
	if url == "" {
		return nil, NewBusinessError("RECORDING_UNAVAILABLE", "recording is not available for this call", ErrRecordingUnavailable)
	}
	return &dto.RecordingResponse{URL: url}, nil
}

// RateCall submits a star rating for exactly one call.
func (s *CallHistoryFlowImpl) RateCall(ctx context.Context, callSid string, req *dto.RateCallRequest) error {
	if req.Rating < utils.MinRating || req.Rating > utils.MaxRating {
		return NewBusinessError("INVALID_RATING", "rating must be between 1 and 5", ErrInvalidRating)
	}
	if err := s.calls.SubmitRating(ctx, callSid, req.Rating); err != nil {
		return mapPlatformError(err, ErrCallNotFound)
	}
	return nil
}

// InitiateCall starts a single outbound call. The dynamic variables handed to
// the platform merge the campaign's prompt variables with the caller's name
// and mobile number; the caller's values win on a key collision.
func (s *CallHistoryFlowImpl) InitiateCall(ctx context.Context, req *dto.OutboundCallRequest, metadata *ClientMetadata) error {
	if req.To == "" {
		return NewBusinessError("PHONE_REQUIRED", "destination phone number is required", ErrPhoneNumberRequired)
	}

	campaign, err := s.campaigns.ByID(ctx, req.CampaignID)
	if err != nil {
		return mapPlatformError(err, ErrCampaignNotFound)
	}

	variables := make(map[string]string, len(campaign.LLM.PromptJSON.PromptVariables)+2)
	for k, v := range campaign.LLM.PromptJSON.PromptVariables {
		variables[k] = v
	}
	if req.CallerName != "" {
		variables["caller_name"] = req.CallerName
	}
	variables["mobile"] = req.To

	err = s.calls.Initiate(ctx, platform.OutboundCallRequest{
		CampaignID:       req.CampaignID,
		To:               req.To,
		From:             req.From,
		CallerName:       req.CallerName,
		DynamicVariables: variables,
	})
	if err != nil {
		return mapPlatformError(err, ErrCampaignNotFound)
	}
	return nil
}

// buildCallQuery validates the filters and applies the default date window
// when the operator picked no range.
func buildCallQuery(req *dto.CallListRequest, defaultPageSize int) (*platform.CallQuery, error) {
	start, err := parseFilterDate(req.StartDate)
	if err != nil {
		return nil, NewBusinessError("INVALID_DATE", "start_date is not a valid date", err)
	}
	end, err := parseFilterDate(req.EndDate)
	if err != nil {
		return nil, NewBusinessError("INVALID_DATE", "end_date is not a valid date", err)
	}

	if start.IsZero() && end.IsZero() {
		end = utils.UTCNow()
		start = end.Add(-utils.DefaultCallWindow)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return nil, NewBusinessError("INVALID_DATE_RANGE", "start date cannot be after end date", ErrStartDateAfterEndDate)
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &platform.CallQuery{
		CampaignID:  req.CampaignID,
		StartDate:   start,
		EndDate:     end,
		PageSize:    pageSize,
		Cursor:      req.Cursor,
		Search:      req.Search,
		Status:      req.Status,
		DurationMin: req.DurationMin,
		DurationMax: req.DurationMax,
	}, nil
}

var filterDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseFilterDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range filterDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseEmbeddedJSON decodes an artifact field that arrives as a JSON-encoded
// string, sometimes wrapped in a markdown code fence. Anything unparseable is
// kept whole under a single key instead of being dropped.
func parseEmbeddedJSON(raw string) map[string]string {
	raw = stripCodeFence(raw)
	if raw == "" {
		return nil
	}

	parsed := gjson.Parse(raw)
	if parsed.Type == gjson.String {
		// Double-encoded payload: unwrap once and retry.
		parsed = gjson.Parse(parsed.String())
	}
	if !parsed.IsObject() {
		return map[string]string{"value": strings.TrimSpace(raw)}
	}

	out := make(map[string]string)
	parsed.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	return out
}

// stripCodeFence removes a surrounding markdown fence, with or without a
// language tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		// A bare language tag like "json" on the fence line is dropped.
		if first == "" || !strings.ContainsAny(first, "{[\"") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
