package review

import (
	"net/http"

	"go-storefront/internal/pkg/apperror"
)

var (
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product id",
		http.StatusBadRequest,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrEmptyComment = apperror.New(
		apperror.CodeValidation,
		"Comment is required",
		http.StatusBadRequest,
	)

	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"Login required to write a review",
		http.StatusUnauthorized,
	)
)
