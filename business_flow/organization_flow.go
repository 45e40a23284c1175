package businessflow

import (
	"context"

	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
)

// OrganizationFlow manages the organization directory.
type OrganizationFlow interface {
	ListOrganizations(ctx context.Context) (*dto.OrganizationListResponse, error)
	GetOrganization(ctx context.Context, orgID string) (*models.Organization, error)
	CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error)
	UpdateOrganization(ctx context.Context, orgID string, req *dto.UpdateOrganizationRequest) (*models.Organization, error)
	DeleteOrganization(ctx context.Context, orgID string, req *dto.DeleteResourceRequest) error
}

// OrganizationFlowImpl implements OrganizationFlow.
type OrganizationFlowImpl struct {
	orgs platform.OrganizationRepository
}

// NewOrganizationFlow creates a new organization flow.
func NewOrganizationFlow(orgs platform.OrganizationRepository) OrganizationFlow {
	return &OrganizationFlowImpl{orgs: orgs}
}

func (s *OrganizationFlowImpl) ListOrganizations(ctx context.Context) (*dto.OrganizationListResponse, error) {
	orgs, err := s.orgs.List(ctx)
	if err != nil {
		return nil, mapPlatformError(err, nil)
	}
	return &dto.OrganizationListResponse{Organizations: orgs, Total: len(orgs)}, nil
}

func (s *OrganizationFlowImpl) GetOrganization(ctx context.Context, orgID string) (*models.Organization, error) {
	org, err := s.orgs.ByID(ctx, orgID)
	if err != nil {
		return nil, mapPlatformError(err, ErrOrganizationNotFound)
	}
	return org, nil
}

func (s *OrganizationFlowImpl) CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	if req.Name == "" {
		return nil, NewBusinessError("ORG_NAME_REQUIRED", "organization name is required", ErrOrganizationNameRequired)
	}
	status := models.OrganizationStatus(req.Status)
	if status == "" {
		status = models.OrganizationStatusActive
	}
	created, err := s.orgs.Create(ctx, &models.Organization{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
	})
	if err != nil {
		return nil, mapPlatformError(err, nil)
	}
	return created, nil
}

// UpdateOrganization replaces the whole record; the platform has no partial
// update.
func (s *OrganizationFlowImpl) UpdateOrganization(ctx context.Context, orgID string, req *dto.UpdateOrganizationRequest) (*models.Organization, error) {
	if req.Name == "" {
		return nil, NewBusinessError("ORG_NAME_REQUIRED", "organization name is required", ErrOrganizationNameRequired)
	}
	current, err := s.orgs.ByID(ctx, orgID)
	if err != nil {
		return nil, mapPlatformError(err, ErrOrganizationNotFound)
	}

	current.Name = req.Name
	current.Description = req.Description
	if req.Status != "" {
		current.Status = models.OrganizationStatus(req.Status)
	}

	updated, err := s.orgs.Update(ctx, current)
	if err != nil {
		return nil, mapPlatformError(err, ErrOrganizationNotFound)
	}
	return updated, nil
}

func (s *OrganizationFlowImpl) DeleteOrganization(ctx context.Context, orgID string, req *dto.DeleteResourceRequest) error {
	if req == nil || !req.Confirm {
		return NewBusinessError("CONFIRMATION_REQUIRED", "deleting an organization requires confirmation", ErrConfirmationRequired)
	}
	if err := s.orgs.Delete(ctx, orgID); err != nil {
		return mapPlatformError(err, ErrOrganizationNotFound)
	}
	return nil
}
