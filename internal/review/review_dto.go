package review

import (
	"time"

	"go-storefront/internal/domain"
)

type CreateReviewRequest struct {
	Comment string `json:"comment" validate:"required,max=1000"`
	Rate    int    `json:"rate" validate:"required,min=1,max=5"`
}

type ReviewResponse struct {
	ID        int64      `json:"id"`
	UserName  string     `json:"userName,omitempty"`
	Comment   string     `json:"comment"`
	Rate      float64    `json:"rate"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type ListResponse struct {
	Items   []ReviewResponse `json:"items"`
	Average float64          `json:"average"`
	Count   int              `json:"count"`
	Empty   bool             `json:"empty"`
}

func toResponse(r domain.Review) ReviewResponse {
	res := ReviewResponse{
		ID:       r.ID,
		UserName: r.UserName,
		Comment:  r.Comment,
		Rate:     r.Rate.InexactFloat64(),
	}
	if !r.CreatedAt.IsZero() {
		t := r.CreatedAt
		res.CreatedAt = &t
	}
	return res
}

func toListResponse(reviews []domain.Review) ListResponse {
	items := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, toResponse(r))
	}

	return ListResponse{
		Items:   items,
		Average: Average(reviews).Round(2).InexactFloat64(),
		Count:   len(reviews),
		Empty:   len(reviews) == 0,
	}
}
