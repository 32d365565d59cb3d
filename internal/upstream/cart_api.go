package upstream

import (
	"context"
	"net/http"
	"strconv"

	"go-storefront/internal/domain"
)

const cartPath = "/Customer/Carts"

func itemPath(productID int64) string {
	return cartPath + "/" + strconv.FormatInt(productID, 10)
}

func (c *Client) GetCart(ctx context.Context, token string) (domain.Cart, error) {
	var wire cartWire
	if err := c.do(ctx, http.MethodGet, cartPath, token, nil, &wire); err != nil {
		return domain.Cart{}, err
	}

	var totalIssues fieldIssues
	totalIssues.check("total", wire.Total)

	cart := domain.Cart{
		Items: make([]domain.CartLine, 0, len(wire.Items)),
		Total: totalIssues.nonNegative("total", wire.Total.Decimal()),
	}
	c.warnIssues("cart", 0, totalIssues)

	for _, w := range wire.Items {
		line, issues := w.toDomain()
		c.warnIssues("cart_line", line.ProductID, issues)
		cart.Items = append(cart.Items, line)
	}
	return cart, nil
}

func (c *Client) AddToCart(ctx context.Context, token string, productID int64) error {
	body := map[string]int64{"productId": productID}
	return c.do(ctx, http.MethodPost, cartPath, token, body, nil)
}

func (c *Client) IncrementItem(ctx context.Context, token string, productID int64) error {
	path := cartPath + "/increment/" + strconv.FormatInt(productID, 10)
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

func (c *Client) DecrementItem(ctx context.Context, token string, productID int64) error {
	path := cartPath + "/decrement/" + strconv.FormatInt(productID, 10)
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

func (c *Client) UpdateItemCount(ctx context.Context, token string, productID int64, count int) error {
	body := map[string]int{"count": count}
	return c.do(ctx, http.MethodPut, itemPath(productID), token, body, nil)
}

func (c *Client) RemoveItem(ctx context.Context, token string, productID int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(productID), token, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, cartPath+"/clear", token, nil, nil)
}
