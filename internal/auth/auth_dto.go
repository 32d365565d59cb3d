package auth

import (
	"time"

	"go-storefront/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FullName        string `json:"fullName" validate:"required,min=3"`
	UserName        string `json:"userName" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,phone_sa"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ProfileResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	City        string `json:"city,omitempty"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
	User        *ProfileResponse `json:"user,omitempty"`
}

type ActionStatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func toProfileResponse(p domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		FullName:    p.FullName,
		UserName:    p.UserName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		City:        p.City,
	}
}
