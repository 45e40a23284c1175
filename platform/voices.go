package platform

import (
	"context"
	"net/url"

	"github.com/voxlane/console/models"
)

type voiceRepository struct {
	client *Client
}

// NewVoiceRepository creates the vendor voice catalog binding.
func NewVoiceRepository(client *Client) VoiceRepository {
	return &voiceRepository{client: client}
}

func (r *voiceRepository) List(ctx context.Context, f VoiceFilter) ([]models.Voice, error) {
	query := url.Values{}
	if f.Vendor != "" {
		query.Set("vendor", f.Vendor)
	}
	if f.Language != "" {
		query.Set("language", f.Language)
	}
	if f.Gender != "" {
		query.Set("gender", f.Gender)
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	var voices []models.Voice
	if err := r.client.getJSON(ctx, "/voices", query, &voices); err != nil {
		return nil, err
	}
	return voices, nil
}
