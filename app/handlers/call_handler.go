package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/voxlane/console/app/dto"
	businessflow "github.com/voxlane/console/business_flow"
)

// CallHandlerInterface defines the contract for call history handlers
type CallHandlerInterface interface {
	ListCalls(c fiber.Ctx) error
	GetArtifacts(c fiber.Ctx) error
	GetRecording(c fiber.Ctx) error
	RateCall(c fiber.Ctx) error
	InitiateCall(c fiber.Ctx) error
	ExportCSV(c fiber.Ctx) error
	DetailedReport(c fiber.Ctx) error
}

// CallHandler handles call history HTTP requests
type CallHandler struct {
	callFlow   businessflow.CallHistoryFlow
	exportFlow businessflow.ExportFlow
	validator  *validator.Validate
}

// NewCallHandler creates a new call handler
func NewCallHandler(callFlow businessflow.CallHistoryFlow, exportFlow businessflow.ExportFlow) *CallHandler {
	return &CallHandler{
		callFlow:   callFlow,
		exportFlow: exportFlow,
		validator:  validator.New(),
	}
}

func (h *CallHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CallHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListCalls returns one filtered page of call history
// @Summary List Calls
// @Description Fetch one cursor page of call history for a campaign
// @Tags Calls
// @Accept json
// @Produce json
// @Param request body dto.CallListRequest true "Filters, cursor, and sequence number"
// @Success 200 {object} dto.APIResponse{data=dto.CallListResponse} "Calls retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid date range"
// @Failure 401 {object} dto.APIResponse "Session expired"
// @Router /api/v1/calls/list [post]
func (h *CallHandler) ListCalls(c fiber.Ctx) error {
	var req dto.CallListRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.callFlow.ListCalls(createRequestContext(c, "/api/v1/calls/list"), &req)
	if err != nil {
		return h.flowError(c, err, "Failed to list calls", "CALL_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Calls retrieved successfully", result)
}

// GetArtifacts returns the parsed post-call artifact bundle
// @Summary Call Artifacts
// @Description Fetch summary, categories, extracted data, and transcript for a call
// @Tags Calls
// @Produce json
// @Param sid path string true "Call SID"
// @Success 200 {object} dto.APIResponse{data=dto.CallArtifactsResponse} "Artifacts retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Session expired"
// @Router /api/v1/calls/{sid}/artifacts [get]
func (h *CallHandler) GetArtifacts(c fiber.Ctx) error {
	callSid := c.Params("sid")
	if callSid == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Call SID is required", "MISSING_CALL_SID", nil)
	}

	result, err := h.callFlow.GetArtifacts(createRequestContext(c, "/api/v1/calls/"+callSid+"/artifacts"), callSid)
	if err != nil {
		return h.flowError(c, err, "Failed to fetch artifacts", "ARTIFACTS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Artifacts retrieved successfully", result)
}

// GetRecording resolves the signed recording URL for a call
// @Summary Call Recording
// @Description Resolve the short-lived signed URL of a call recording
// @Tags Calls
// @Produce json
// @Param campaignId path string true "Campaign ID"
// @Param sid path string true "Call SID"
// @Success 200 {object} dto.APIResponse{data=dto.RecordingResponse} "Recording URL resolved"
// @Failure 404 {object} dto.APIResponse "Recording unavailable"
// @Router /api/v1/calls/{campaignId}/{sid}/recording [get]
func (h *CallHandler) GetRecording(c fiber.Ctx) error {
	campaignID := c.Params("campaignId")
	callSid := c.Params("sid")
	if campaignID == "" || callSid == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign ID and call SID are required", "MISSING_PARAMS", nil)
	}

	result, err := h.callFlow.GetRecordingURL(createRequestContext(c, "/api/v1/calls/recording"), campaignID, callSid)
	if err != nil {
		if businessflow.IsRecordingUnavailable(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Recording is not available for this call", "RECORDING_UNAVAILABLE", nil)
		}
		return h.flowError(c, err, "Failed to resolve recording", "RECORDING_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Recording URL resolved", result)
}

// RateCall submits a star rating for one call
// @Summary Rate Call
// @Description Submit a 1-5 star rating for a call
// @Tags Calls
// @Accept json
// @Produce json
// @Param sid path string true "Call SID"
// @Param request body dto.RateCallRequest true "Rating"
// @Success 200 {object} dto.APIResponse "Rating submitted"
// @Failure 400 {object} dto.APIResponse "Invalid rating"
// @Router /api/v1/calls/{sid}/rating [post]
func (h *CallHandler) RateCall(c fiber.Ctx) error {
	callSid := c.Params("sid")
	if callSid == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Call SID is required", "MISSING_CALL_SID", nil)
	}

	var req dto.RateCallRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	if err := h.callFlow.RateCall(createRequestContext(c, "/api/v1/calls/"+callSid+"/rating"), callSid, &req); err != nil {
		if businessflow.IsInvalidRating(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Rating must be between 1 and 5", "INVALID_RATING", nil)
		}
		return h.flowError(c, err, "Failed to submit rating", "RATING_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Rating submitted", nil)
}

// InitiateCall starts a single outbound call
// @Summary Initiate Call
// @Description Start one outbound call on a campaign
// @Tags Calls
// @Accept json
// @Produce json
// @Param request body dto.OutboundCallRequest true "Destination and optional caller identity"
// @Success 202 {object} dto.APIResponse "Call initiated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/calls/initiate [post]
func (h *CallHandler) InitiateCall(c fiber.Ctx) error {
	var req dto.OutboundCallRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	if err := h.callFlow.InitiateCall(createRequestContext(c, "/api/v1/calls/initiate"), &req, metadata); err != nil {
		return h.flowError(c, err, "Failed to initiate call", "CALL_INITIATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusAccepted, "Call initiated", nil)
}

// ExportCSV downloads the filtered call history as CSV
// @Summary Export Calls CSV
// @Description Export every call matching the filters as a CSV download
// @Tags Exports
// @Accept json
// @Produce text/csv
// @Param request body dto.ExportCallsRequest true "Filters"
// @Success 200 {file} binary "CSV file"
// @Failure 404 {object} dto.APIResponse "Nothing to export"
// @Router /api/v1/calls/export [post]
func (h *CallHandler) ExportCSV(c fiber.Ctx) error {
	var req dto.ExportCallsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	file, err := h.exportFlow.ExportCallsCSV(createRequestContextWithTimeout(c, "/api/v1/calls/export", exportTimeout), &req)
	if err != nil {
		if businessflow.IsNothingToExport(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No calls match the current filters", "NOTHING_TO_EXPORT", nil)
		}
		return h.flowError(c, err, "Failed to export calls", "EXPORT_FAILED")
	}

	c.Set("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Set("Content-Type", file.ContentType)
	return c.Send(file.Data)
}

// DetailedReport downloads the XLSX report joining calls with artifacts
// @Summary Detailed Report
// @Description Export calls joined with their post-call artifacts as XLSX
// @Tags Exports
// @Accept json
// @Produce application/octet-stream
// @Param request body dto.DetailedReportRequest true "Campaign and date window"
// @Success 200 {file} binary "XLSX file"
// @Failure 404 {object} dto.APIResponse "Nothing to export"
// @Router /api/v1/calls/report [post]
func (h *CallHandler) DetailedReport(c fiber.Ctx) error {
	var req dto.DetailedReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	file, err := h.exportFlow.DetailedReport(createRequestContextWithTimeout(c, "/api/v1/calls/report", exportTimeout), &req)
	if err != nil {
		if businessflow.IsNothingToExport(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No calls match the current filters", "NOTHING_TO_EXPORT", nil)
		}
		if businessflow.IsReportTooLarge(err) {
			return h.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "Report exceeds the maximum call count", "REPORT_TOO_LARGE", nil)
		}
		return h.flowError(c, err, "Failed to build report", "REPORT_FAILED")
	}

	c.Set("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Set("Content-Type", file.ContentType)
	return c.Send(file.Data)
}

func (h *CallHandler) flowError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsSessionExpired(err), businessflow.IsSessionNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session has expired, please log in again", "SESSION_EXPIRED", nil)
	case businessflow.IsCampaignNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	case businessflow.IsCallNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Call not found", "CALL_NOT_FOUND", nil)
	case businessflow.IsStartDateAfterEndDate(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Start date cannot be after end date", "INVALID_DATE_RANGE", nil)
	case businessflow.IsPhoneNumberRequired(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Destination phone number is required", "PHONE_REQUIRED", nil)
	}

	var bizErr *businessflow.BusinessError
	if errors.As(err, &bizErr) {
		switch bizErr.Code {
		case "INVALID_DATE":
			return h.ErrorResponse(c, fiber.StatusBadRequest, bizErr.Message, bizErr.Code, nil)
		case "PLATFORM_ERROR":
			return h.ErrorResponse(c, fiber.StatusBadGateway, bizErr.Message, bizErr.Code, nil)
		}
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
