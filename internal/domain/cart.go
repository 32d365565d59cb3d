package domain

import "github.com/shopspring/decimal"

type CartLine struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Count       int             `json:"count"`
	Price       decimal.Decimal `json:"price"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// Cart mirrors the server state. Total is the server-reported aggregate and is
// zero when the server omitted it.
type Cart struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (c Cart) Line(productID int64) (CartLine, bool) {
	for _, l := range c.Items {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
