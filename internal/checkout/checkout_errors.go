package checkout

import (
	"net/http"

	"go-storefront/internal/pkg/apperror"
)

var (
	ErrInvalidPaymentMethod = apperror.New(
		apperror.CodeValidation,
		"Payment method must be credit or cash",
		http.StatusBadRequest,
	)

	ErrEmptyCart = apperror.New(
		"CART_EMPTY",
		"Cart is empty",
		http.StatusUnprocessableEntity,
	)

	ErrPaymentURLMissing = apperror.New(
		"PAYMENT_URL_MISSING",
		"Payment provider did not return a redirect url",
		http.StatusBadGateway,
	)

	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"Login required to check out",
		http.StatusUnauthorized,
	)
)
