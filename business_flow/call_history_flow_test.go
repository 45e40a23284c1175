package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/utils"
)

func TestListCallsSortsNewestFirst(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls: []models.Call{
			{Sid: "oldest", DateCreated: "2026-08-01T09:00:00Z"},
			{Sid: "newest", DateCreated: "2026-08-03T09:00:00Z"},
			{Sid: "middle", DateCreated: "2026-08-02T09:00:00Z"},
		},
	}
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(), 20)

	resp, err := flow.ListCalls(context.Background(), &dto.CallListRequest{
		CampaignID: "camp-1",
		Sequence:   41,
	})
	require.NoError(t, err)

	require.Len(t, resp.Calls, 3)
	assert.Equal(t, "newest", resp.Calls[0].Sid)
	assert.Equal(t, "middle", resp.Calls[1].Sid)
	assert.Equal(t, "oldest", resp.Calls[2].Sid)
	assert.Equal(t, int64(41), resp.Sequence, "sequence must be echoed back")
}

func TestListCallsTimestampFallback(t *testing.T) {
	// DateCreated is missing or unparseable on some records; StartTime and
	// EndTime take over, and fully malformed rows sink to the bottom.
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls: []models.Call{
			{Sid: "malformed", DateCreated: "not a date"},
			{Sid: "by-start", StartTime: "2026-08-02T10:00:00Z"},
			{Sid: "by-end", EndTime: "2026-08-02T12:00:00Z"},
		},
	}
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(), 20)

	resp, err := flow.ListCalls(context.Background(), &dto.CallListRequest{CampaignID: "camp-1"})
	require.NoError(t, err)

	assert.Equal(t, "by-end", resp.Calls[0].Sid)
	assert.Equal(t, "by-start", resp.Calls[1].Sid)
	assert.Equal(t, "malformed", resp.Calls[2].Sid)
}

func TestListCallsDefaultWindow(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{}
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(), 20)

	_, err := flow.ListCalls(context.Background(), &dto.CallListRequest{CampaignID: "camp-1"})
	require.NoError(t, err)

	q := repo.lastQuery
	assert.False(t, q.StartDate.IsZero())
	assert.False(t, q.EndDate.IsZero())
	assert.Equal(t, utils.DefaultCallWindow, q.EndDate.Sub(q.StartDate))
	assert.WithinDuration(t, time.Now().UTC(), q.EndDate, time.Minute)
	assert.Equal(t, 20, q.PageSize)
}

func TestListCallsExplicitDatesKept(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{}
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(), 20)

	_, err := flow.ListCalls(context.Background(), &dto.CallListRequest{
		CampaignID: "camp-1",
		StartDate:  "2026-08-01",
		EndDate:    "2026-08-15",
		PageSize:   50,
	})
	require.NoError(t, err)

	q := repo.lastQuery
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), q.StartDate)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), q.EndDate)
	assert.Equal(t, 50, q.PageSize)
}

func TestListCallsInvalidRange(t *testing.T) {
	flow := NewCallHistoryFlow(newFakeCallRepo(), newFakeCampaignRepo(), 20)

	_, err := flow.ListCalls(context.Background(), &dto.CallListRequest{
		CampaignID: "camp-1",
		StartDate:  "2026-08-15",
		EndDate:    "2026-08-01",
	})
	assert.True(t, IsStartDateAfterEndDate(err))

	_, err = flow.ListCalls(context.Background(), &dto.CallListRequest{
		CampaignID: "camp-1",
		StartDate:  "15/08/2026",
	})
	assert.Error(t, err)
}

func TestGetArtifactsEmpty(t *testing.T) {
	flow := NewCallHistoryFlow(newFakeCallRepo(), newFakeCampaignRepo(), 20)

	// No artifacts generated yet is a valid state, not an error.
	resp, err := flow.GetArtifacts(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.True(t, resp.Empty)
	assert.Empty(t, resp.Summary)
}

func TestGetArtifactsParsesEmbeddedJSON(t *testing.T) {
	repo := newFakeCallRepo()
	repo.artifacts["sid-1"] = &models.CallArtifacts{
		Summary:       "Customer agreed to renew.",
		Category:      "```json\n{\"outcome\": \"renewed\", \"sentiment\": \"positive\"}\n```",
		ExtractedData: "\"{\\\"renewal_date\\\": \\\"2026-09-15\\\"}\"",
		Transcription: models.Transcription{Messages: []models.TranscriptMessage{
			{Role: "assistant", Content: "Hello"},
		}},
	}
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(), 20)

	resp, err := flow.GetArtifacts(context.Background(), "sid-1")
	require.NoError(t, err)

	assert.False(t, resp.Empty)
	assert.Equal(t, "renewed", resp.Categories["outcome"])
	assert.Equal(t, "positive", resp.Categories["sentiment"])
	assert.Equal(t, "2026-09-15", resp.ExtractedData["renewal_date"],
		"double-encoded payloads must be unwrapped")
	require.Len(t, resp.Transcript, 1)
}

func TestParseEmbeddedJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "plain object",
			raw:  `{"a": "1"}`,
			want: map[string]string{"a": "1"},
		},
		{
			name: "fenced with language tag",
			raw:  "```json\n{\"a\": \"1\"}\n```",
			want: map[string]string{"a": "1"},
		},
		{
			name: "fenced without language tag",
			raw:  "```\n{\"a\": \"1\"}\n```",
			want: map[string]string{"a": "1"},
		},
		{
			name: "double encoded",
			raw:  `"{\"a\": \"1\"}"`,
			want: map[string]string{"a": "1"},
		},
		{
			name: "non-object kept whole",
			raw:  "free text verdict",
			want: map[string]string{"value": "free text verdict"},
		},
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseEmbeddedJSON(tt.raw))
		})
	}
}

func TestGetRecordingURL(t *testing.T) {
	repo := newFakeCallRepo()
	repo.recording = "https://cdn.example.com/rec/sid-1.mp3"
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(), 20)

	resp, err := flow.GetRecordingURL(context.Background(), "camp-1", "sid-1")
	require.NoError(t, err)
	assert.Equal(t, repo.recording, resp.URL)

	repo.recording = ""
	_, err = flow.GetRecordingURL(context.Background(), "camp-1", "sid-1")
	assert.True(t, IsRecordingUnavailable(err))
}

func TestRateCallBounds(t *testing.T) {
	repo := newFakeCallRepo()
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(), 20)

	assert.True(t, IsInvalidRating(flow.RateCall(context.Background(), "sid-1", &dto.RateCallRequest{Rating: 0})))
	assert.True(t, IsInvalidRating(flow.RateCall(context.Background(), "sid-1", &dto.RateCallRequest{Rating: 6})))

	require.NoError(t, flow.RateCall(context.Background(), "sid-1", &dto.RateCallRequest{Rating: 4}))
	assert.Equal(t, 4, repo.ratings["sid-1"])
}

func TestInitiateCallMergesDynamicVariables(t *testing.T) {
	campaign := &models.Campaign{CampaignID: "camp-1", Name: "Renewals"}
	campaign.LLM.PromptJSON.PromptVariables = map[string]string{
		"plan":        "gold",
		"caller_name": "from-campaign",
	}
	repo := newFakeCallRepo()
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(campaign), 20)

	err := flow.InitiateCall(context.Background(), &dto.OutboundCallRequest{
		CampaignID: "camp-1",
		To:         "+15550001111",
		CallerName: "Acme Support",
	}, nil)
	require.NoError(t, err)

	require.Len(t, repo.initiated, 1)
	sent := repo.initiated[0]
	assert.Equal(t, "Acme Support", sent.CallerName)
	assert.Equal(t, map[string]string{
		"plan":        "gold",
		"caller_name": "Acme Support",
		"mobile":      "+15550001111",
	}, sent.DynamicVariables, "caller values must win over campaign prompt variables")
}

func TestInitiateCallWithoutCallerName(t *testing.T) {
	campaign := &models.Campaign{CampaignID: "camp-1"}
	repo := newFakeCallRepo()
	flow := NewCallHistoryFlow(repo, newFakeCampaignRepo(campaign), 20)

	err := flow.InitiateCall(context.Background(), &dto.OutboundCallRequest{
		CampaignID: "camp-1",
		To:         "+15550001111",
	}, nil)
	require.NoError(t, err)

	require.Len(t, repo.initiated, 1)
	vars := repo.initiated[0].DynamicVariables
	assert.Equal(t, "+15550001111", vars["mobile"])
	_, hasCallerName := vars["caller_name"]
	assert.False(t, hasCallerName)
}

func TestInitiateCallUnknownCampaign(t *testing.T) {
	flow := NewCallHistoryFlow(newFakeCallRepo(), newFakeCampaignRepo(), 20)

	err := flow.InitiateCall(context.Background(), &dto.OutboundCallRequest{
		CampaignID: "ghost",
		To:         "+15550001111",
	}, nil)
	assert.True(t, IsCampaignNotFound(err))
}

func TestInitiateCallRequiresDestination(t *testing.T) {
	flow := NewCallHistoryFlow(newFakeCallRepo(), newFakeCampaignRepo(), 20)

	err := flow.InitiateCall(context.Background(), &dto.OutboundCallRequest{CampaignID: "camp-1"}, nil)
	assert.True(t, IsPhoneNumberRequired(err))
}
