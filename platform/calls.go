package platform

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/voxlane/console/models"
)

const dateLayout = "2006-01-02"

type callRepository struct {
	client *Client
}

// NewCallRepository creates the remote call-history store.
func NewCallRepository(client *Client) CallRepository {
	return &callRepository{client: client}
}

func (r *callRepository) List(ctx context.Context, q CallQuery) (*models.CallPage, error) {
	query := url.Values{}
	if !q.StartDate.IsZero() {
		query.Set("start_date", q.StartDate.Format(dateLayout))
	}
	if !q.EndDate.IsZero() {
		query.Set("end_date", q.EndDate.Format(dateLayout))
	}
	if q.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Cursor != "" {
		query.Set("cursor", q.Cursor)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.DurationMin != nil {
		query.Set("duration_min", strconv.Itoa(*q.DurationMin))
	}
	if q.DurationMax != nil {
		query.Set("duration_max", strconv.Itoa(*q.DurationMax))
	}

	var page models.CallPage
	if err := r.client.getJSON(ctx, "/calls/external/"+q.CampaignID+"/list", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Artifacts fetches the post-call artifact bundle. A 404 means the call
// produced no artifacts, which is a valid empty result rather than an error.
func (r *callRepository) Artifacts(ctx context.Context, callSid string) (*models.CallArtifacts, error) {
	var artifacts models.CallArtifacts
	err := r.client.getJSON(ctx, "/calls/"+callSid+"/artifacts", nil, &artifacts)
	if errors.Is(err, ErrNotFound) {
		return &models.CallArtifacts{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &artifacts, nil
}

func (r *callRepository) SubmitRating(ctx context.Context, callSid string, rating int) error {
	payload := map[string]int{"rating": rating}
	return r.client.postJSON(ctx, "/calls/"+callSid+"/rating", payload, nil)
}

// RecordingURL resolves the short-lived signed URL for a call recording.
func (r *callRepository) RecordingURL(ctx context.Context, campaignID, callSid string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	path := "/calls/recordings/" + campaignID + "/" + callSid
	if err := r.client.getJSON(ctx, path, nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (r *callRepository) Initiate(ctx context.Context, req OutboundCallRequest) error {
	return r.client.postJSON(ctx, "/calls/", req, nil)
}
