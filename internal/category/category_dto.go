package category

type CategoryResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MainImageURL string `json:"mainImageUrl,omitempty"`
}
