package domain

import "github.com/shopspring/decimal"

// Product is the typed catalog record. Numeric fields are already coerced and
// range-checked by the upstream client, so consumers never re-parse them.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	Rate         decimal.Decimal `json:"rate"`
	Quantity     int             `json:"quantity"`
	CategoryName string          `json:"categoryName,omitempty"`
	BrandName    string          `json:"brandName,omitempty"`
	MainImageURL string          `json:"mainImageUrl,omitempty"`
}

func (p Product) HasDiscount() bool {
	return p.Discount.IsPositive()
}

// Category and Brand share the same listing shape.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MainImageURL string `json:"mainImageUrl,omitempty"`
}

type Brand struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MainImageURL string `json:"mainImageUrl,omitempty"`
}
