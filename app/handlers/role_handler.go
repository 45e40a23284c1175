package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/voxlane/console/app/dto"
	businessflow "github.com/voxlane/console/business_flow"
)

// RoleHandlerInterface defines the contract for role handlers
type RoleHandlerInterface interface {
	ListRoles(c fiber.Ctx) error
	GetRole(c fiber.Ctx) error
	CreateRole(c fiber.Ctx) error
	UpdateRole(c fiber.Ctx) error
	DeleteRole(c fiber.Ctx) error
}

// RoleHandler handles permission role HTTP requests
type RoleHandler struct {
	roleFlow  businessflow.RoleFlow
	validator *validator.Validate
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleFlow businessflow.RoleFlow) *RoleHandler {
	return &RoleHandler{
		roleFlow:  roleFlow,
		validator: validator.New(),
	}
}

func (h *RoleHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *RoleHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListRoles returns every permission role
// @Summary List Roles
// @Tags Roles
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RoleListResponse} "Roles retrieved successfully"
// @Router /api/v1/roles [get]
func (h *RoleHandler) ListRoles(c fiber.Ctx) error {
	result, err := h.roleFlow.ListRoles(createRequestContext(c, "/api/v1/roles"))
	if err != nil {
		return h.flowError(c, err, "Failed to list roles", "ROLE_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Roles retrieved successfully", result)
}

// GetRole returns one role
// @Summary Get Role
// @Tags Roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} dto.APIResponse "Role retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Role not found"
// @Router /api/v1/roles/{id} [get]
func (h *RoleHandler) GetRole(c fiber.Ctx) error {
	roleID := c.Params("id")
	result, err := h.roleFlow.GetRole(createRequestContext(c, "/api/v1/roles/"+roleID), roleID)
	if err != nil {
		return h.flowError(c, err, "Failed to fetch role", "ROLE_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Role retrieved successfully", result)
}

// CreateRole creates a new role
// @Summary Create Role
// @Tags Roles
// @Accept json
// @Produce json
// @Param request body dto.CreateRoleRequest true "Role data"
// @Success 201 {object} dto.APIResponse "Role created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 403 {object} dto.APIResponse "System role"
// @Router /api/v1/roles [post]
func (h *RoleHandler) CreateRole(c fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.roleFlow.CreateRole(createRequestContext(c, "/api/v1/roles"), &req)
	if err != nil {
		return h.flowError(c, err, "Failed to create role", "ROLE_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Role created successfully", result)
}

// UpdateRole replaces a role
// @Summary Update Role
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body dto.UpdateRoleRequest true "Role data"
// @Success 200 {object} dto.APIResponse "Role updated successfully"
// @Failure 403 {object} dto.APIResponse "System role"
// @Failure 404 {object} dto.APIResponse "Role not found"
// @Router /api/v1/roles/{id} [put]
func (h *RoleHandler) UpdateRole(c fiber.Ctx) error {
	roleID := c.Params("id")

	var req dto.UpdateRoleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.roleFlow.UpdateRole(createRequestContext(c, "/api/v1/roles/"+roleID), roleID, &req)
	if err != nil {
		return h.flowError(c, err, "Failed to update role", "ROLE_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Role updated successfully", result)
}

// DeleteRole deletes a role after confirmation
// @Summary Delete Role
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body dto.DeleteResourceRequest true "Confirmation"
// @Success 200 {object} dto.APIResponse "Role deleted successfully"
// @Failure 400 {object} dto.APIResponse "Confirmation missing"
// @Failure 403 {object} dto.APIResponse "System role"
// @Router /api/v1/roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c fiber.Ctx) error {
	roleID := c.Params("id")

	var req dto.DeleteResourceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.roleFlow.DeleteRole(createRequestContext(c, "/api/v1/roles/"+roleID), roleID, &req); err != nil {
		if businessflow.IsConfirmationRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Deleting a role requires confirmation", "CONFIRMATION_REQUIRED", nil)
		}
		return h.flowError(c, err, "Failed to delete role", "ROLE_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Role deleted successfully", nil)
}

func (h *RoleHandler) flowError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsSessionExpired(err), businessflow.IsSessionNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session has expired, please log in again", "SESSION_EXPIRED", nil)
	case businessflow.IsRoleNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Role not found", "ROLE_NOT_FOUND", nil)
	case businessflow.IsSystemRole(err):
		return h.ErrorResponse(c, fiber.StatusForbidden, "System roles cannot be modified or deleted", "SYSTEM_ROLE", nil)
	case businessflow.IsRoleNameRequired(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Role name is required", "ROLE_NAME_REQUIRED", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
