package dto

import "github.com/voxlane/console/models"

// Organization DTOs

type CreateOrganizationRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1024"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

type UpdateOrganizationRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1024"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

type OrganizationListResponse struct {
	Organizations []models.Organization `json:"organizations"`
	Total         int                   `json:"total"`
}

// User DTOs

type CreateUserRequest struct {
	FirstName    string `json:"first_name" validate:"required,max=255"`
	LastName     string `json:"last_name" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=128"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,max=32"`
	RoleID       string `json:"role_id" validate:"required"`
	OrgID        string `json:"org_id" validate:"omitempty"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	// Password is optional on update; empty means keep the current one.
	Password     string `json:"password" validate:"omitempty,min=8,max=128"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,max=32"`
	RoleID       string `json:"role_id" validate:"required"`
	OrgID        string `json:"org_id" validate:"omitempty"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UserListResponse struct {
	Users []models.User `json:"users"`
	Total int           `json:"total"`
}

// Role DTOs

type RolePermissionsRequest struct {
	Read  []string `json:"read" validate:"dive,oneof=organizations users campaigns analytics"`
	Write []string `json:"write" validate:"dive,oneof=organizations users campaigns analytics"`
}

type CreateRoleRequest struct {
	Name        string                 `json:"name" validate:"required,max=255"`
	Description string                 `json:"description" validate:"omitempty,max=1024"`
	Permissions RolePermissionsRequest `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        string                 `json:"name" validate:"required,max=255"`
	Description string                 `json:"description" validate:"omitempty,max=1024"`
	Permissions RolePermissionsRequest `json:"permissions"`
}

type RoleListResponse struct {
	Roles []models.Role `json:"roles"`
	Total int           `json:"total"`
}

// DeleteResourceRequest requires an explicit acknowledgement before any
// destructive call reaches the platform.
type DeleteResourceRequest struct {
	Confirm bool `json:"confirm" validate:"required,eq=true"`
}
