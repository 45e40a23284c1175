package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/voxlane/console/app/dto"
	businessflow "github.com/voxlane/console/business_flow"
)

// UserHandlerInterface defines the contract for user handlers
type UserHandlerInterface interface {
	ListUsers(c fiber.Ctx) error
	GetUser(c fiber.Ctx) error
	CreateUser(c fiber.Ctx) error
	UpdateUser(c fiber.Ctx) error
	DeleteUser(c fiber.Ctx) error
}

// UserHandler handles user account HTTP requests
type UserHandler struct {
	userFlow  businessflow.UserFlow
	validator *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(userFlow businessflow.UserFlow) *UserHandler {
	return &UserHandler{
		userFlow:  userFlow,
		validator: validator.New(),
	}
}

func (h *UserHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *UserHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListUsers returns every user account
// @Summary List Users
// @Tags Users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users retrieved successfully"
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	result, err := h.userFlow.ListUsers(createRequestContext(c, "/api/v1/users"))
	if err != nil {
		return h.flowError(c, err, "Failed to list users", "USER_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Users retrieved successfully", result)
}

// GetUser returns one user account
// @Summary Get User
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse "User retrieved successfully"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	userID := c.Params("id")
	result, err := h.userFlow.GetUser(createRequestContext(c, "/api/v1/users/"+userID), userID)
	if err != nil {
		return h.flowError(c, err, "Failed to fetch user", "USER_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "User retrieved successfully", result)
}

// CreateUser creates a new user account
// @Summary Create User
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User data"
// @Success 201 {object} dto.APIResponse "User created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.userFlow.CreateUser(createRequestContext(c, "/api/v1/users"), &req)
	if err != nil {
		return h.flowError(c, err, "Failed to create user", "USER_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "User created successfully", result)
}

// UpdateUser replaces a user account
// @Summary Update User
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "User data"
// @Success 200 {object} dto.APIResponse "User updated successfully"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c fiber.Ctx) error {
	userID := c.Params("id")

	var req dto.UpdateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	result, err := h.userFlow.UpdateUser(createRequestContext(c, "/api/v1/users/"+userID), userID, &req)
	if err != nil {
		return h.flowError(c, err, "Failed to update user", "USER_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "User updated successfully", result)
}

// DeleteUser deletes a user account after confirmation
// @Summary Delete User
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.DeleteResourceRequest true "Confirmation"
// @Success 200 {object} dto.APIResponse "User deleted successfully"
// @Failure 400 {object} dto.APIResponse "Confirmation missing"
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	userID := c.Params("id")

	var req dto.DeleteResourceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.userFlow.DeleteUser(createRequestContext(c, "/api/v1/users/"+userID), userID, &req); err != nil {
		if businessflow.IsConfirmationRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Deleting a user requires confirmation", "CONFIRMATION_REQUIRED", nil)
		}
		return h.flowError(c, err, "Failed to delete user", "USER_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "User deleted successfully", nil)
}

func (h *UserHandler) flowError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsSessionExpired(err), businessflow.IsSessionNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session has expired, please log in again", "SESSION_EXPIRED", nil)
	case businessflow.IsUserNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND", nil)
	case businessflow.IsUserEmailRequired(err), businessflow.IsPasswordRequired(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_USER_DATA", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
