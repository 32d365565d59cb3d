package product

import (
	"net/http"

	"go-storefront/internal/pkg/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product id",
		http.StatusBadRequest,
	)

	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity must be a positive number",
		http.StatusBadRequest,
	)

	ErrInvalidFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid filter value",
		http.StatusBadRequest,
	)
)
