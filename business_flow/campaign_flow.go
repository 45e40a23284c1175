package businessflow

import (
	"context"
	"log"

	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
)

// CampaignFlow covers the campaign list surface outside the wizard: listing,
// inspection, deletion, and contact uploads.
type CampaignFlow interface {
	ListCampaigns(ctx context.Context) (*dto.CampaignListResponse, error)
	GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID string, req *dto.DeleteCampaignRequest, metadata *ClientMetadata) error
	UploadContacts(ctx context.Context, campaignID, fileName string, data []byte) (*dto.UploadContactsResponse, error)
}

// CampaignFlowImpl implements CampaignFlow.
type CampaignFlowImpl struct {
	campaigns platform.CampaignRepository
}

// NewCampaignFlow creates a new campaign flow.
func NewCampaignFlow(campaigns platform.CampaignRepository) CampaignFlow {
	return &CampaignFlowImpl{campaigns: campaigns}
}

func (s *CampaignFlowImpl) ListCampaigns(ctx context.Context) (*dto.CampaignListResponse, error) {
	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, mapPlatformError(err, nil)
	}
	return &dto.CampaignListResponse{
		Campaigns: campaigns,
		Total:     len(campaigns),
	}, nil
}

func (s *CampaignFlowImpl) GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error) {
	campaign, err := s.campaigns.ByID(ctx, campaignID)
	if err != nil {
		return nil, mapPlatformError(err, ErrCampaignNotFound)
	}
	return campaign, nil
}

// DeleteCampaign removes a campaign upstream. The request must carry an
// explicit acknowledgement; the platform call never happens without it.
func (s *CampaignFlowImpl) DeleteCampaign(ctx context.Context, campaignID string, req *dto.DeleteCampaignRequest, metadata *ClientMetadata) error {
	if req == nil || !req.Confirm {
		return NewBusinessError("CONFIRMATION_REQUIRED", "deleting a campaign requires confirmation", ErrConfirmationRequired)
	}
	if err := s.campaigns.Delete(ctx, campaignID); err != nil {
		return mapPlatformError(err, ErrCampaignNotFound)
	}
	if metadata != nil {
		log.Printf("campaign %s deleted from %s", campaignID, metadata.IPAddress)
	}
	return nil
}

func (s *CampaignFlowImpl) UploadContacts(ctx context.Context, campaignID, fileName string, data []byte) (*dto.UploadContactsResponse, error) {
	if err := s.campaigns.UploadContacts(ctx, campaignID, fileName, data); err != nil {
		return nil, mapPlatformError(err, ErrCampaignNotFound)
	}
	return &dto.UploadContactsResponse{FileName: fileName, Uploaded: true}, nil
}
