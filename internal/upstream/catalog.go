package upstream

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"go-storefront/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var wire listOf[productWire]
	if err := c.do(ctx, http.MethodGet, "/Customer/Products", "", nil, &wire); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		p, issues := w.toDomain()
		c.warnIssues("product", p.ID, issues)
		products = append(products, p)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var wire productWire
	path := "/Customer/Products/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &wire); err != nil {
		return domain.Product{}, err
	}

	p, issues := wire.toDomain()
	if p.ID == 0 {
		p.ID = id
	}
	c.warnIssues("product", p.ID, issues)
	return p, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var wire listOf[namedWire]
	if err := c.do(ctx, http.MethodGet, "/Customer/Categories", "", nil, &wire); err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.Category{ID: w.ID.Int64(), Name: w.Name, MainImageURL: w.MainImageURL})
	}
	return out, nil
}

func (c *Client) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	var wire listOf[namedWire]
	if err := c.do(ctx, http.MethodGet, "/Customer/Brands", "", nil, &wire); err != nil {
		return nil, err
	}

	out := make([]domain.Brand, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.Brand{ID: w.ID.Int64(), Name: w.Name, MainImageURL: w.MainImageURL})
	}
	return out, nil
}

func (c *Client) warnIssues(kind string, id int64, issues fieldIssues) {
	if len(issues) == 0 {
		return
	}
	c.logger.Warn("upstream record normalized",
		zap.String("kind", kind),
		zap.Int64("id", id),
		zap.Strings("fields", issues),
	)
}
