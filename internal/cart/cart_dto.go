package cart

import (
	"github.com/shopspring/decimal"

	"go-storefront/internal/domain"
	"go-storefront/internal/pricing"
)

type AddItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

type UpdateQtyRequest struct {
	Count int `json:"count" validate:"required,gte=1"`
}

type LineResponse struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName,omitempty"`
	Count        int     `json:"count"`
	Price        float64 `json:"price"`
	TotalPrice   float64 `json:"totalPrice"`
	CanIncrement bool    `json:"canIncrement"`
	CanDecrement bool    `json:"canDecrement"`
}

type SummaryResponse struct {
	Items                []LineResponse `json:"items"`
	ItemCount            int            `json:"itemCount"`
	Subtotal             float64        `json:"subtotal"`
	Shipping             float64        `json:"shipping"`
	Total                float64        `json:"total"`
	FreeShipping         bool           `json:"freeShipping"`
	AmountToFreeShipping float64        `json:"amountToFreeShipping"`
	Empty                bool           `json:"empty"`
	TotalMismatch        bool           `json:"totalMismatch"`
}

type CountResponse struct {
	Count int `json:"count"`
}

// ErrorDetails accompanies a failed mutation: the cart as it was before.
type ErrorDetails struct {
	Cart SummaryResponse `json:"cart"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ItemCount is the badge number: the sum of line counts, not the number of lines.
func ItemCount(c domain.Cart) int {
	n := 0
	for _, l := range c.Items {
		n += l.Count
	}
	return n
}

func summarize(c domain.Cart, policy pricing.ShippingPolicy, maxQty int) SummaryResponse {
	subtotal, drift := pricing.ResolveSubtotal(c.Items, c.Total)
	shipping := policy.Fee(subtotal)

	items := make([]LineResponse, 0, len(c.Items))
	for _, l := range c.Items {
		items = append(items, LineResponse{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Count:        l.Count,
			Price:        money(l.Price),
			TotalPrice:   money(l.TotalPrice),
			CanIncrement: l.Count < maxQty,
			CanDecrement: l.Count > 1,
		})
	}

	return SummaryResponse{
		Items:                items,
		ItemCount:            ItemCount(c),
		Subtotal:             money(subtotal),
		Shipping:             money(shipping),
		Total:                money(pricing.OrderTotal(subtotal, shipping)),
		FreeShipping:         policy.IsFree(subtotal),
		AmountToFreeShipping: money(policy.AmountToFreeShipping(subtotal)),
		Empty:                c.IsEmpty(),
		TotalMismatch:        drift,
	}
}
