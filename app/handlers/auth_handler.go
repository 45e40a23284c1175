package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/voxlane/console/app/dto"
	businessflow "github.com/voxlane/console/business_flow"
)

// AuthHandlerInterface defines the contract for session handlers
type AuthHandlerInterface interface {
	Login(c fiber.Ctx) error
	CurrentSession(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

// AuthHandler handles session-related HTTP requests
type AuthHandler struct {
	sessionFlow businessflow.SessionFlow
	validator   *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessionFlow businessflow.SessionFlow) *AuthHandler {
	return &AuthHandler{
		sessionFlow: sessionFlow,
		validator:   validator.New(),
	}
}

func (h *AuthHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AuthHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Login handles operator sign-in
// @Summary Operator Login
// @Description Exchange operator credentials for a console session token
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Operator credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.sessionFlow.Login(createRequestContext(c, "/api/v1/auth/login"), &req, metadata)
	if err != nil {
		if businessflow.IsInvalidCredentials(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS", nil)
		}

		log.Println("Login failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// CurrentSession returns the operator profile of the active session
// @Summary Current Session
// @Description Return the operator profile captured at login
// @Tags Session
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Active session"
// @Failure 401 {object} dto.APIResponse "No active session"
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) CurrentSession(c fiber.Ctx) error {
	result, err := h.sessionFlow.CurrentSession(createRequestContext(c, "/api/v1/auth/session"))
	if err != nil {
		if businessflow.IsSessionNotFound(err) || businessflow.IsSessionExpired(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session has expired, please log in again", "SESSION_EXPIRED", nil)
		}
		log.Println("Session lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Session lookup failed", "SESSION_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Active session", result)
}

// Logout handles operator sign-out
// @Summary Operator Logout
// @Description Close the platform session and purge the console session record
// @Tags Session
// @Produce json
// @Success 200 {object} dto.APIResponse "Logout successful"
// @Failure 401 {object} dto.APIResponse "No active session"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	if err := h.sessionFlow.Logout(createRequestContext(c, "/api/v1/auth/logout"), metadata); err != nil {
		if businessflow.IsSessionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "No active session", "SESSION_NOT_FOUND", nil)
		}
		log.Println("Logout failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Logout failed", "LOGOUT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Logout successful", nil)
}
