package businessflow

import (
	"context"

	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
)

// RoleFlow manages permission roles. The platform's built-in roles are
// immutable: any write against them is rejected here before it goes upstream.
type RoleFlow interface {
	ListRoles(ctx context.Context) (*dto.RoleListResponse, error)
	GetRole(ctx context.Context, roleID string) (*models.Role, error)
	CreateRole(ctx context.Context, req *dto.CreateRoleRequest) (*models.Role, error)
	UpdateRole(ctx context.Context, roleID string, req *dto.UpdateRoleRequest) (*models.Role, error)
	DeleteRole(ctx context.Context, roleID string, req *dto.DeleteResourceRequest) error
}

// RoleFlowImpl implements RoleFlow.
type RoleFlowImpl struct {
	roles platform.RoleRepository
}

// NewRoleFlow creates a new role flow.
func NewRoleFlow(roles platform.RoleRepository) RoleFlow {
	return &RoleFlowImpl{roles: roles}
}

func (s *RoleFlowImpl) ListRoles(ctx context.Context) (*dto.RoleListResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, mapPlatformError(err, nil)
	}
	return &dto.RoleListResponse{Roles: roles, Total: len(roles)}, nil
}

func (s *RoleFlowImpl) GetRole(ctx context.Context, roleID string) (*models.Role, error) {
	role, err := s.roles.ByID(ctx, roleID)
	if err != nil {
		return nil, mapPlatformError(err, ErrRoleNotFound)
	}
	return role, nil
}

func (s *RoleFlowImpl) CreateRole(ctx context.Context, req *dto.CreateRoleRequest) (*models.Role, error) {
	if req.Name == "" {
		return nil, NewBusinessError("ROLE_NAME_REQUIRED", "role name is required", ErrRoleNameRequired)
	}
	candidate := models.Role{
		Name:        req.Name,
		Description: req.Description,
		Permissions: models.RolePermissions{
			Read:  req.Permissions.Read,
			Write: req.Permissions.Write,
		},
	}
	// A new role must not impersonate a built-in by name.
	if candidate.IsSystem() {
		return nil, NewBusinessError("SYSTEM_ROLE", "system roles cannot be modified or deleted", ErrSystemRole)
	}
	created, err := s.roles.Create(ctx, &candidate)
	if err != nil {
		return nil, mapPlatformError(err, nil)
	}
	return created, nil
}

func (s *RoleFlowImpl) UpdateRole(ctx context.Context, roleID string, req *dto.UpdateRoleRequest) (*models.Role, error) {
	if req.Name == "" {
		return nil, NewBusinessError("ROLE_NAME_REQUIRED", "role name is required", ErrRoleNameRequired)
	}
	current, err := s.roles.ByID(ctx, roleID)
	if err != nil {
		return nil, mapPlatformError(err, ErrRoleNotFound)
	}
	if current.IsSystem() {
		return nil, NewBusinessError("SYSTEM_ROLE", "system roles cannot be modified or deleted", ErrSystemRole)
	}

	current.Name = req.Name
	current.Description = req.Description
	current.Permissions = models.RolePermissions{
		Read:  req.Permissions.Read,
		Write: req.Permissions.Write,
	}

	updated, err := s.roles.Update(ctx, current)
	if err != nil {
		return nil, mapPlatformError(err, ErrRoleNotFound)
	}
	return updated, nil
}

func (s *RoleFlowImpl) DeleteRole(ctx context.Context, roleID string, req *dto.DeleteResourceRequest) error {
	if req == nil || !req.Confirm {
		return NewBusinessError("CONFIRMATION_REQUIRED", "deleting a role requires confirmation", ErrConfirmationRequired)
	}
	current, err := s.roles.ByID(ctx, roleID)
	if err != nil {
		return mapPlatformError(err, ErrRoleNotFound)
	}
	if current.IsSystem() {
		return NewBusinessError("SYSTEM_ROLE", "system roles cannot be modified or deleted", ErrSystemRole)
	}
	if err := s.roles.Delete(ctx, roleID); err != nil {
		return mapPlatformError(err, ErrRoleNotFound)
	}
	return nil
}
