package platform

import (
	"context"

	"github.com/voxlane/console/models"
)

type organizationRepository struct {
	client *Client
}

// NewOrganizationRepository creates the remote organization store.
func NewOrganizationRepository(client *Client) OrganizationRepository {
	return &organizationRepository{client: client}
}

func (r *organizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := r.client.getJSON(ctx, "/organizations", nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) ByID(ctx context.Context, orgID string) (*models.Organization, error) {
	var org models.Organization
	if err := r.client.getJSON(ctx, "/organizations/"+orgID, nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) Create(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	var created models.Organization
	if err := r.client.postJSON(ctx, "/organizations", org, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	var updated models.Organization
	if err := r.client.putJSON(ctx, "/organizations/"+org.ID, org, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *organizationRepository) Delete(ctx context.Context, orgID string) error {
	return r.client.deleteJSON(ctx, "/organizations/"+orgID)
}
