package brand

type BrandResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MainImageURL string `json:"mainImageUrl,omitempty"`
}
