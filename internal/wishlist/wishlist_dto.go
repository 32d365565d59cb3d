package wishlist

import (
	"time"

	"go-storefront/internal/domain"
	"go-storefront/internal/pricing"
)

type WishlistItemResponse struct {
	ProductID   int64     `json:"productId"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Price       float64   `json:"price"`
	FinalPrice  float64   `json:"finalPrice"`
	HasDiscount bool      `json:"hasDiscount"`
	InStock     bool      `json:"inStock"`
	AddedAt     time.Time `json:"addedAt"`
}

type WishlistResponse struct {
	Items     []WishlistItemResponse `json:"items"`
	ItemCount int                    `json:"itemCount"`
	Empty     bool                   `json:"empty"`
}

type AddItemResponse struct {
	Message string               `json:"message"`
	Item    WishlistItemResponse `json:"item"`
}

func toItemResponse(p domain.Product, addedAt time.Time) WishlistItemResponse {
	return WishlistItemResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		ImageURL:    p.MainImageURL,
		Price:       p.Price.Round(2).InexactFloat64(),
		FinalPrice:  pricing.EffectivePrice(p.Price, p.Discount).Round(2).InexactFloat64(),
		HasDiscount: p.HasDiscount(),
		InStock:     p.Quantity > 0,
		AddedAt:     addedAt,
	}
}
