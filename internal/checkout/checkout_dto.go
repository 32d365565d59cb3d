package checkout

import (
	"strings"

	"go-storefront/internal/domain"
)

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

type CheckoutResponse struct {
	PaymentMethod string  `json:"paymentMethod"`
	RedirectURL   string  `json:"redirectUrl,omitempty"`
	Message       string  `json:"message,omitempty"`
	ItemCount     int     `json:"itemCount"`
	Total         float64 `json:"total"`
}

// paymentMethod maps the storefront's choice to the store API's wire name.
func paymentMethod(choice string) (domain.PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "credit", "card", "visa":
		return domain.PaymentVisa, true
	case "cash":
		return domain.PaymentCash, true
	default:
		return "", false
	}
}
