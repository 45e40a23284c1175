package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/models"
)

func TestCreateRoleRejectsBuiltinName(t *testing.T) {
	repo := newFakeRoleRepo()
	flow := NewRoleFlow(repo)

	_, err := flow.CreateRole(context.Background(), &dto.CreateRoleRequest{Name: "Superuser"})
	assert.True(t, IsSystemRole(err), "a new role must not impersonate a built-in by name")
	assert.Nil(t, repo.created)

	created, err := flow.CreateRole(context.Background(), &dto.CreateRoleRequest{
		Name: "Supervisor",
		Permissions: dto.RolePermissionsRequest{
			Read:  []string{models.ModuleCampaigns, models.ModuleAnalytics},
			Write: []string{models.ModuleCampaigns},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Supervisor", created.Name)
	assert.True(t, created.CanWrite(models.ModuleCampaigns))
	assert.False(t, created.CanWrite(models.ModuleUsers))
}

func TestUpdateRoleRejectsSystemRoles(t *testing.T) {
	tests := []struct {
		name string
		role *models.Role
	}{
		{name: "preset id", role: &models.Role{ID: "role_org_admin", Name: "Org Admin"}},
		{name: "superuser by name", role: &models.Role{ID: "role-custom-1", Name: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRoleRepo(tt.role)
			flow := NewRoleFlow(repo)

			_, err := flow.UpdateRole(context.Background(), tt.role.ID, &dto.UpdateRoleRequest{Name: "Renamed"})
			assert.True(t, IsSystemRole(err))
			assert.Nil(t, repo.updated)
		})
	}
}

func TestUpdateRoleReplacesPermissions(t *testing.T) {
	repo := newFakeRoleRepo(&models.Role{
		ID:   "role-custom-1",
		Name: "Viewer",
		Permissions: models.RolePermissions{
			Read: []string{models.ModuleCampaigns},
		},
	})
	flow := NewRoleFlow(repo)

	updated, err := flow.UpdateRole(context.Background(), "role-custom-1", &dto.UpdateRoleRequest{
		Name: "Editor",
		Permissions: dto.RolePermissionsRequest{
			Read:  []string{models.ModuleCampaigns, models.ModuleUsers},
			Write: []string{models.ModuleCampaigns},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Editor", updated.Name)
	assert.True(t, updated.CanRead(models.ModuleUsers))
	assert.True(t, updated.CanWrite(models.ModuleCampaigns))
}

func TestDeleteRoleRequiresConfirmation(t *testing.T) {
	repo := newFakeRoleRepo(&models.Role{ID: "role-custom-1", Name: "Viewer"})
	flow := NewRoleFlow(repo)

	err := flow.DeleteRole(context.Background(), "role-custom-1", &dto.DeleteResourceRequest{})
	assert.True(t, IsConfirmationRequired(err))
	assert.Empty(t, repo.deleted)

	err = flow.DeleteRole(context.Background(), "role-custom-1", &dto.DeleteResourceRequest{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"role-custom-1"}, repo.deleted)
}

func TestDeleteRoleRejectsSystemRole(t *testing.T) {
	repo := newFakeRoleRepo(&models.Role{ID: "role_superuser", Name: "Superuser"})
	flow := NewRoleFlow(repo)

	err := flow.DeleteRole(context.Background(), "role_superuser", &dto.DeleteResourceRequest{Confirm: true})
	assert.True(t, IsSystemRole(err))
	assert.Empty(t, repo.deleted)
}

func TestGetRoleNotFound(t *testing.T) {
	flow := NewRoleFlow(newFakeRoleRepo())

	_, err := flow.GetRole(context.Background(), "missing")
	assert.True(t, IsRoleNotFound(err))
}
