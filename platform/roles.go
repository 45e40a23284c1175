package platform

import (
	"context"

	"github.com/voxlane/console/models"
)

type roleRepository struct {
	client *Client
}

// NewRoleRepository creates the remote role store.
func NewRoleRepository(client *Client) RoleRepository {
	return &roleRepository{client: client}
}

func (r *roleRepository) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.client.getJSON(ctx, "/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) ByID(ctx context.Context, roleID string) (*models.Role, error) {
	var role models.Role
	if err := r.client.getJSON(ctx, "/roles/"+roleID, nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) Create(ctx context.Context, role *models.Role) (*models.Role, error) {
	var created models.Role
	if err := r.client.postJSON(ctx, "/roles", role, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *roleRepository) Update(ctx context.Context, role *models.Role) (*models.Role, error) {
	var updated models.Role
	if err := r.client.putJSON(ctx, "/roles/"+role.ID, role, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *roleRepository) Delete(ctx context.Context, roleID string) error {
	return r.client.deleteJSON(ctx, "/roles/"+roleID)
}
