package upstream

import (
	"context"
	"net/http"

	"go-storefront/internal/domain"
)

func (c *Client) Pay(ctx context.Context, token string, method domain.PaymentMethod) (domain.PaymentResult, error) {
	body := map[string]string{"paymentMethod": string(method)}

	var wire paymentWire
	if err := c.do(ctx, http.MethodPost, "/Customer/CheckOut/payment", token, body, &wire); err != nil {
		return domain.PaymentResult{}, err
	}

	return domain.PaymentResult{
		RedirectURL: wire.redirect(),
		Message:     wire.Message,
	}, nil
}
