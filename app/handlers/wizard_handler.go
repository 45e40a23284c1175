package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/voxlane/console/app/dto"
	businessflow "github.com/voxlane/console/business_flow"
)

// WizardHandlerInterface defines the contract for campaign wizard handlers
type WizardHandlerInterface interface {
	StartWizard(c fiber.Ctx) error
	GetDraft(c fiber.Ctx) error
	UpdateStep(c fiber.Ctx) error
	Advance(c fiber.Ctx) error
	Back(c fiber.Ctx) error
	Submit(c fiber.Ctx) error
	DiscardDraft(c fiber.Ctx) error
	ListVoices(c fiber.Ctx) error
}

// WizardHandler handles campaign wizard HTTP requests
type WizardHandler struct {
	wizardFlow businessflow.WizardFlow
	validator  *validator.Validate
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizardFlow businessflow.WizardFlow) *WizardHandler {
	return &WizardHandler{
		wizardFlow: wizardFlow,
		validator:  validator.New(),
	}
}

func (h *WizardHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *WizardHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// StartWizard opens a new wizard draft
// @Summary Start Campaign Wizard
// @Description Open a wizard draft in create or edit mode
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body dto.StartWizardRequest true "Wizard mode and optional campaign id"
// @Success 201 {object} dto.APIResponse{data=dto.WizardDraftResponse} "Draft created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/wizard [post]
func (h *WizardHandler) StartWizard(c fiber.Ctx) error {
	var req dto.StartWizardRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.wizardFlow.StartWizard(createRequestContext(c, "/api/v1/wizard"), &req, metadata)
	if err != nil {
		return h.flowError(c, err, "Failed to start wizard", "WIZARD_START_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Draft created", result)
}

// GetDraft returns the current wizard draft state
// @Summary Get Wizard Draft
// @Description Fetch the current state of a wizard draft
// @Tags Wizard
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=dto.WizardDraftResponse} "Draft state"
// @Failure 404 {object} dto.APIResponse "Draft not found"
// @Router /api/v1/wizard/{id} [get]
func (h *WizardHandler) GetDraft(c fiber.Ctx) error {
	draftID := c.Params("id")
	result, err := h.wizardFlow.GetDraft(createRequestContext(c, "/api/v1/wizard/"+draftID), draftID)
	if err != nil {
		return h.flowError(c, err, "Failed to fetch draft", "DRAFT_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Draft state", result)
}

// UpdateStep applies a partial edit to the draft's current step
// @Summary Update Wizard Step
// @Description Apply a partial edit to one wizard step
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.UpdateStepRequest true "Step fields"
// @Success 200 {object} dto.APIResponse{data=dto.WizardDraftResponse} "Draft updated"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid value"
// @Failure 404 {object} dto.APIResponse "Draft not found"
// @Router /api/v1/wizard/{id} [patch]
func (h *WizardHandler) UpdateStep(c fiber.Ctx) error {
	draftID := c.Params("id")

	var req dto.UpdateStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.wizardFlow.UpdateStep(createRequestContext(c, "/api/v1/wizard/"+draftID), draftID, &req)
	if err != nil {
		return h.flowError(c, err, "Failed to update draft", "DRAFT_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Draft updated", result)
}

// Advance moves the wizard forward one step
// @Summary Advance Wizard
// @Description Move to the next wizard step if the current one is complete
// @Tags Wizard
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=dto.WizardDraftResponse} "Draft advanced"
// @Failure 400 {object} dto.APIResponse "Current step incomplete"
// @Failure 404 {object} dto.APIResponse "Draft not found"
// @Router /api/v1/wizard/{id}/advance [post]
func (h *WizardHandler) Advance(c fiber.Ctx) error {
	draftID := c.Params("id")
	result, err := h.wizardFlow.Advance(createRequestContext(c, "/api/v1/wizard/"+draftID+"/advance"), draftID)
	if err != nil {
		return h.flowError(c, err, "Failed to advance wizard", "WIZARD_ADVANCE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Draft advanced", result)
}

// Back moves the wizard back one step
// @Summary Wizard Back
// @Description Move to the previous wizard step
// @Tags Wizard
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=dto.WizardDraftResponse} "Draft moved back"
// @Failure 404 {object} dto.APIResponse "Draft not found"
// @Router /api/v1/wizard/{id}/back [post]
func (h *WizardHandler) Back(c fiber.Ctx) error {
	draftID := c.Params("id")
	result, err := h.wizardFlow.Back(createRequestContext(c, "/api/v1/wizard/"+draftID+"/back"), draftID)
	if err != nil {
		return h.flowError(c, err, "Failed to move back", "WIZARD_BACK_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Draft moved back", result)
}

// Submit persists the draft as a campaign
// @Summary Submit Wizard
// @Description Flatten the draft and create or replace the campaign upstream
// @Tags Wizard
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmitWizardResponse} "Campaign persisted"
// @Failure 400 {object} dto.APIResponse "Draft incomplete"
// @Failure 404 {object} dto.APIResponse "Draft not found"
// @Router /api/v1/wizard/{id}/submit [post]
func (h *WizardHandler) Submit(c fiber.Ctx) error {
	draftID := c.Params("id")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.wizardFlow.Submit(createRequestContext(c, "/api/v1/wizard/"+draftID+"/submit"), draftID, metadata)
	if err != nil {
		return h.flowError(c, err, "Failed to submit campaign", "WIZARD_SUBMIT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Campaign persisted", result)
}

// DiscardDraft deletes a wizard draft
// @Summary Discard Wizard Draft
// @Description Delete a wizard draft without submitting
// @Tags Wizard
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse "Draft discarded"
// @Router /api/v1/wizard/{id} [delete]
func (h *WizardHandler) DiscardDraft(c fiber.Ctx) error {
	draftID := c.Params("id")
	if err := h.wizardFlow.DiscardDraft(createRequestContext(c, "/api/v1/wizard/"+draftID), draftID); err != nil {
		return h.flowError(c, err, "Failed to discard draft", "DRAFT_DISCARD_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Draft discarded", nil)
}

// ListVoices returns the vendor voice catalog for the voice step
// @Summary List Voices
// @Description List TTS voices filtered by vendor, language, gender, or search text
// @Tags Wizard
// @Produce json
// @Success 200 {object} dto.APIResponse "Voices retrieved successfully"
// @Router /api/v1/voices [get]
func (h *WizardHandler) ListVoices(c fiber.Ctx) error {
	req := dto.ListVoicesRequest{
		Vendor:   c.Query("vendor"),
		Language: c.Query("language"),
		Gender:   c.Query("gender"),
		Search:   c.Query("search"),
	}

	voices, err := h.wizardFlow.ListVoices(createRequestContext(c, "/api/v1/voices"), &req)
	if err != nil {
		return h.flowError(c, err, "Failed to list voices", "VOICE_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Voices retrieved successfully", fiber.Map{"voices": voices})
}

func (h *WizardHandler) flowError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsSessionExpired(err), businessflow.IsSessionNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session has expired, please log in again", "SESSION_EXPIRED", nil)
	case businessflow.IsDraftNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Wizard draft not found", "DRAFT_NOT_FOUND", nil)
	case businessflow.IsCampaignNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	case businessflow.IsStepIncomplete(err), businessflow.IsStepOutOfRange(err),
		businessflow.IsDraftNotHydrated(err), businessflow.IsInvalidDirection(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "WIZARD_INVALID_STATE", nil)
	}

	var bizErr *businessflow.BusinessError
	if errors.As(err, &bizErr) && bizErr.Code == "PLATFORM_ERROR" {
		return h.ErrorResponse(c, fiber.StatusBadGateway, bizErr.Message, bizErr.Code, nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
