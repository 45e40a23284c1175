package handlers

import (
	"io"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/voxlane/console/app/dto"
	businessflow "github.com/voxlane/console/business_flow"
)

// CampaignHandlerInterface defines the contract for campaign handlers
type CampaignHandlerInterface interface {
	ListCampaigns(c fiber.Ctx) error
	GetCampaign(c fiber.Ctx) error
	DeleteCampaign(c fiber.Ctx) error
	UploadContacts(c fiber.Ctx) error
	ContactTemplate(c fiber.Ctx) error
}

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	campaignFlow businessflow.CampaignFlow
	exportFlow   businessflow.ExportFlow
	validator    *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow, exportFlow businessflow.ExportFlow) *CampaignHandler {
	return &CampaignHandler{
		campaignFlow: campaignFlow,
		exportFlow:   exportFlow,
		validator:    validator.New(),
	}
}

func (h *CampaignHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CampaignHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListCampaigns returns every campaign visible to the operator
// @Summary List Campaigns
// @Description List all campaigns
// @Tags Campaigns
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CampaignListResponse} "Campaigns retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Session expired"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c fiber.Ctx) error {
	result, err := h.campaignFlow.ListCampaigns(createRequestContext(c, "/api/v1/campaigns"))
	if err != nil {
		return h.flowError(c, err, "Failed to list campaigns", "CAMPAIGN_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Campaigns retrieved successfully", result)
}

// GetCampaign returns one campaign by id
// @Summary Get Campaign
// @Description Fetch a single campaign
// @Tags Campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} dto.APIResponse "Campaign retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c fiber.Ctx) error {
	campaignID := c.Params("id")
	if campaignID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign ID is required", "MISSING_CAMPAIGN_ID", nil)
	}

	result, err := h.campaignFlow.GetCampaign(createRequestContext(c, "/api/v1/campaigns/"+campaignID), campaignID)
	if err != nil {
		return h.flowError(c, err, "Failed to fetch campaign", "CAMPAIGN_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Campaign retrieved successfully", result)
}

// DeleteCampaign removes a campaign after explicit confirmation
// @Summary Delete Campaign
// @Description Delete a campaign; requires confirm acknowledgement
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body dto.DeleteCampaignRequest true "Confirmation"
// @Success 200 {object} dto.APIResponse "Campaign deleted successfully"
// @Failure 400 {object} dto.APIResponse "Confirmation missing"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c fiber.Ctx) error {
	campaignID := c.Params("id")
	if campaignID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign ID is required", "MISSING_CAMPAIGN_ID", nil)
	}

	var req dto.DeleteCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	err := h.campaignFlow.DeleteCampaign(createRequestContext(c, "/api/v1/campaigns/"+campaignID), campaignID, &req, metadata)
	if err != nil {
		if businessflow.IsConfirmationRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Deleting a campaign requires confirmation", "CONFIRMATION_REQUIRED", nil)
		}
		return h.flowError(c, err, "Failed to delete campaign", "CAMPAIGN_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Campaign deleted successfully", nil)
}

// UploadContacts pushes a contact list file to the platform
// @Summary Upload Contacts
// @Description Upload a contact list for an outbound campaign
// @Tags Campaigns
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Campaign ID"
// @Param file formData file true "Contact list file"
// @Success 200 {object} dto.APIResponse{data=dto.UploadContactsResponse} "Contacts uploaded successfully"
// @Failure 400 {object} dto.APIResponse "Missing or unreadable file"
// @Router /api/v1/campaigns/{id}/contacts [post]
func (h *CampaignHandler) UploadContacts(c fiber.Ctx) error {
	campaignID := c.Params("id")
	if campaignID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign ID is required", "MISSING_CAMPAIGN_ID", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact file is required", "MISSING_FILE", err.Error())
	}
	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact file is unreadable", "UNREADABLE_FILE", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact file is unreadable", "UNREADABLE_FILE", err.Error())
	}

	result, err := h.campaignFlow.UploadContacts(createRequestContext(c, "/api/v1/campaigns/"+campaignID+"/contacts"), campaignID, fileHeader.Filename, data)
	if err != nil {
		return h.flowError(c, err, "Failed to upload contacts", "CONTACT_UPLOAD_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Contacts uploaded successfully", result)
}

// ContactTemplate downloads the XLSX upload template for a campaign
// @Summary Contact Template
// @Description Download the contact upload template derived from the campaign's prompt variables
// @Tags Campaigns
// @Produce application/octet-stream
// @Param id path string true "Campaign ID"
// @Success 200 {file} binary "Template file"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/campaigns/{id}/contacts/template [get]
func (h *CampaignHandler) ContactTemplate(c fiber.Ctx) error {
	campaignID := c.Params("id")
	if campaignID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign ID is required", "MISSING_CAMPAIGN_ID", nil)
	}

	file, err := h.exportFlow.ContactTemplate(createRequestContext(c, "/api/v1/campaigns/"+campaignID+"/contacts/template"), campaignID)
	if err != nil {
		return h.flowError(c, err, "Failed to build template", "TEMPLATE_FAILED")
	}

	c.Set("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Set("Content-Type", file.ContentType)
	return c.Send(file.Data)
}

func (h *CampaignHandler) flowError(c fiber.Ctx, err error, message, code string) error {
	if businessflow.IsSessionExpired(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session has expired, please log in again", "SESSION_EXPIRED", nil)
	}
	if businessflow.IsCampaignNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
