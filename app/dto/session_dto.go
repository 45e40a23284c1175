package dto

import "github.com/voxlane/console/models"

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginResponse returns the console session token and the operator profile.
type LoginResponse struct {
	Token   string             `json:"token"`
	Profile models.UserProfile `json:"profile"`
}

// SessionResponse describes the current session for the profile endpoint.
type SessionResponse struct {
	Profile models.UserProfile `json:"profile"`
}
