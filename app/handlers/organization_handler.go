package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/voxlane/console/app/dto"
	businessflow "github.com/voxlane/console/business_flow"
)

// OrganizationHandlerInterface defines the contract for organization handlers
type OrganizationHandlerInterface interface {
	ListOrganizations(c fiber.Ctx) error
	GetOrganization(c fiber.Ctx) error
	CreateOrganization(c fiber.Ctx) error
	UpdateOrganization(c fiber.Ctx) error
	DeleteOrganization(c fiber.Ctx) error
}

// OrganizationHandler handles organization HTTP requests
type OrganizationHandler struct {
	orgFlow   businessflow.OrganizationFlow
	validator *validator.Validate
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgFlow businessflow.OrganizationFlow) *OrganizationHandler {
	return &OrganizationHandler{
		orgFlow:   orgFlow,
		validator: validator.New(),
	}
}

func (h *OrganizationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *OrganizationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListOrganizations returns the organization directory
// @Summary List Organizations
// @Tags Organizations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationListResponse} "Organizations retrieved successfully"
// @Router /api/v1/organizations [get]
func (h *OrganizationHandler) ListOrganizations(c fiber.Ctx) error {
	result, err := h.orgFlow.ListOrganizations(createRequestContext(c, "/api/v1/organizations"))
	if err != nil {
		return h.flowError(c, err, "Failed to list organizations", "ORG_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Organizations retrieved successfully", result)
}

// GetOrganization returns one organization
// @Summary Get Organization
// @Tags Organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.APIResponse "Organization retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Organization not found"
// @Router /api/v1/organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c fiber.Ctx) error {
	orgID := c.Params("id")
	result, err := h.orgFlow.GetOrganization(createRequestContext(c, "/api/v1/organizations/"+orgID), orgID)
	if err != nil {
		return h.flowError(c, err, "Failed to fetch organization", "ORG_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Organization retrieved successfully", result)
}

// CreateOrganization creates a new organization
// @Summary Create Organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Param request body dto.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} dto.APIResponse "Organization created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/organizations [post]
func (h *OrganizationHandler) CreateOrganization(c fiber.Ctx) error {
	var req dto.CreateOrganizationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.orgFlow.CreateOrganization(createRequestContext(c, "/api/v1/organizations"), &req)
	if err != nil {
		return h.flowError(c, err, "Failed to create organization", "ORG_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Organization created successfully", result)
}

// UpdateOrganization replaces an organization
// @Summary Update Organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param request body dto.UpdateOrganizationRequest true "Organization data"
// @Success 200 {object} dto.APIResponse "Organization updated successfully"
// @Failure 404 {object} dto.APIResponse "Organization not found"
// @Router /api/v1/organizations/{id} [put]
func (h *OrganizationHandler) UpdateOrganization(c fiber.Ctx) error {
	orgID := c.Params("id")

	var req dto.UpdateOrganizationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.orgFlow.UpdateOrganization(createRequestContext(c, "/api/v1/organizations/"+orgID), orgID, &req)
	if err != nil {
		return h.flowError(c, err, "Failed to update organization", "ORG_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Organization updated successfully", result)
}

// DeleteOrganization deletes an organization after confirmation
// @Summary Delete Organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param request body dto.DeleteResourceRequest true "Confirmation"
// @Success 200 {object} dto.APIResponse "Organization deleted successfully"
// @Failure 400 {object} dto.APIResponse "Confirmation missing"
// @Router /api/v1/organizations/{id} [delete]
func (h *OrganizationHandler) DeleteOrganization(c fiber.Ctx) error {
	orgID := c.Params("id")

	var req dto.DeleteResourceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.orgFlow.DeleteOrganization(createRequestContext(c, "/api/v1/organizations/"+orgID), orgID, &req); err != nil {
		if businessflow.IsConfirmationRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Deleting an organization requires confirmation", "CONFIRMATION_REQUIRED", nil)
		}
		return h.flowError(c, err, "Failed to delete organization", "ORG_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Organization deleted successfully", nil)
}

func (h *OrganizationHandler) flowError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsSessionExpired(err), businessflow.IsSessionNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session has expired, please log in again", "SESSION_EXPIRED", nil)
	case businessflow.IsOrganizationNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Organization not found", "ORG_NOT_FOUND", nil)
	case businessflow.IsOrganizationNameRequired(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Organization name is required", "ORG_NAME_REQUIRED", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
