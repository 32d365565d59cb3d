package product

import (
	"github.com/shopspring/decimal"

	"go-storefront/internal/domain"
	"go-storefront/internal/pricing"
)

// ListQuery is bound from the query string. Numeric bounds stay strings so
// an empty value means "not set" rather than zero.
type ListQuery struct {
	Query        string `form:"query"`
	MinPrice     string `form:"minPrice"`
	MaxPrice     string `form:"maxPrice"`
	MinRate      string `form:"minRate"`
	DiscountOnly bool   `form:"discountOnly"`
	Sort         string `form:"sort"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	Limit        int    `form:"limit" binding:"omitempty,min=0,max=100"`
}

type ListRequest struct {
	Criteria FilterCriteria
	Page     int
	Limit    int
}

type ProductResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	FinalPrice   float64 `json:"finalPrice"`
	HasDiscount  bool    `json:"hasDiscount"`
	Rate         float64 `json:"rate"`
	Quantity     int     `json:"quantity"`
	InStock      bool    `json:"inStock"`
	CategoryName string  `json:"categoryName,omitempty"`
	BrandName    string  `json:"brandName,omitempty"`
	MainImageURL string  `json:"mainImageUrl,omitempty"`
}

type ListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
	Empty bool              `json:"empty"`
}

type QuoteResponse struct {
	Count      int     `json:"count"`
	UnitPrice  float64 `json:"unitPrice"`
	FinalPrice float64 `json:"finalPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Saved      float64 `json:"saved"`
}

type DetailResponse struct {
	Product ProductResponse `json:"product"`
	Quote   QuoteResponse   `json:"quote"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func toResponse(p domain.Product) ProductResponse {
	final := p.Price
	if p.HasDiscount() {
		final = pricing.EffectivePrice(p.Price, p.Discount)
	}

	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        money(p.Price),
		Discount:     p.Discount.InexactFloat64(),
		FinalPrice:   money(final),
		HasDiscount:  p.HasDiscount(),
		Rate:         p.Rate.InexactFloat64(),
		Quantity:     p.Quantity,
		InStock:      p.Quantity > 0,
		CategoryName: p.CategoryName,
		BrandName:    p.BrandName,
		MainImageURL: p.MainImageURL,
	}
}

func toQuoteResponse(q pricing.Quote) QuoteResponse {
	return QuoteResponse{
		Count:      q.Count,
		UnitPrice:  money(q.UnitPrice),
		FinalPrice: money(q.FinalPrice),
		TotalPrice: money(q.TotalPrice),
		Saved:      money(q.Saved),
	}
}
