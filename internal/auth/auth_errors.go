package auth

import (
	"net/http"

	"go-storefront/internal/pkg/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		"AUTH_FAILED",
		"Email or password is incorrect",
		http.StatusUnauthorized,
	)

	ErrUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		"Unauthorized access",
		http.StatusUnauthorized,
	)

	ErrResetCodeInvalid = apperror.New(
		"RESET_PASSWORD_CODE_INVALID",
		"Reset code is invalid or expired",
		http.StatusBadRequest,
	)
)
