package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go-storefront/internal/domain"
)

func (c *Client) ListReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))

	var wire listOf[reviewWire]
	if err := c.do(ctx, http.MethodGet, "/Customer/Reviews?"+q.Encode(), "", nil, &wire); err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0, len(wire))
	for _, w := range wire {
		r, issues := w.toDomain()
		c.warnIssues("review", r.ID, issues)
		reviews = append(reviews, r)
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, token string, in NewReview) error {
	return c.do(ctx, http.MethodPost, "/Customer/Reviews", token, in, nil)
}
