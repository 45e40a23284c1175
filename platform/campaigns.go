package platform

import (
	"context"
	"fmt"

	"github.com/voxlane/console/models"
)

type campaignRepository struct {
	client *Client
}

// NewCampaignRepository creates the remote campaign store.
func NewCampaignRepository(client *Client) CampaignRepository {
	return &campaignRepository{client: client}
}

func (r *campaignRepository) List(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.client.getJSON(ctx, "/campaigns", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *campaignRepository) ByID(ctx context.Context, campaignID string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.client.getJSON(ctx, "/campaigns/"+campaignID, nil, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	var created models.Campaign
	if err := r.client.postJSON(ctx, "/campaigns", campaign, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the whole campaign. The platform has no PATCH; partial
// payloads zero the omitted fields upstream, so callers always send the full
// object.
func (r *campaignRepository) Update(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	if campaign.CampaignID == "" {
		return nil, fmt.Errorf("platform: update requires campaign_id")
	}
	var updated models.Campaign
	if err := r.client.putJSON(ctx, "/campaigns/"+campaign.CampaignID, campaign, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *campaignRepository) Delete(ctx context.Context, campaignID string) error {
	return r.client.deleteJSON(ctx, "/campaigns/"+campaignID)
}

func (r *campaignRepository) UploadContacts(ctx context.Context, campaignID, fileName string, csvData []byte) error {
	path := "/campaigns/" + campaignID + "/upload"
	return r.client.postMultipart(ctx, path, "file", fileName, csvData, nil, nil)
}
