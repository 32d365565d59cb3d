package wishlist

import (
	"net/http"

	"go-storefront/internal/pkg/apperror"
)

var (
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product ID",
		http.StatusBadRequest,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrItemAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Item already in wishlist",
		http.StatusConflict,
	)

	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Item not found in wishlist",
		http.StatusNotFound,
	)

	ErrWishlistFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to process wishlist operation",
		http.StatusInternalServerError,
	)

	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"User not authenticated",
		http.StatusUnauthorized,
	)
)
