package cart

import (
	"net/http"

	"go-storefront/internal/pkg/apperror"
)

var (
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Item is not in the cart",
		http.StatusNotFound,
	)

	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product id",
		http.StatusBadRequest,
	)

	ErrQuantityCeiling = apperror.New(
		"QUANTITY_LIMIT_REACHED",
		"Maximum quantity for this item reached",
		http.StatusUnprocessableEntity,
	)

	ErrQuantityFloor = apperror.New(
		"QUANTITY_MINIMUM_REACHED",
		"Quantity cannot go below 1, remove the item instead",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidQty = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity is out of range",
		http.StatusBadRequest,
	)

	ErrConfirmationRequired = apperror.New(
		"CONFIRMATION_REQUIRED",
		"Clearing the cart must be confirmed",
		http.StatusPreconditionRequired,
	)

	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"Login required",
		http.StatusUnauthorized,
	)
)
