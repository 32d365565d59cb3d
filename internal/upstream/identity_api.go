package upstream

import (
	"context"
	"net/http"

	"go-storefront/internal/domain"
)

func (c *Client) Login(ctx context.Context, in Credentials) (string, error) {
	var wire tokenWire
	if err := c.do(ctx, http.MethodPost, "/Identity/Account/Login", "", in, &wire); err != nil {
		return "", err
	}

	token := wire.Token
	if token == "" {
		token = wire.AccessToken
	}
	if token == "" {
		return "", ErrInvalidResponse
	}
	return token, nil
}

func (c *Client) Register(ctx context.Context, in Registration) error {
	return c.do(ctx, http.MethodPost, "/Identity/Account/Register", "", in, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/Identity/Account/forgot-password", "", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, in PasswordReset) error {
	return c.do(ctx, http.MethodPatch, "/Identity/Account/reset-password", "", in, nil)
}

func (c *Client) Profile(ctx context.Context, token string) (domain.Profile, error) {
	var wire profileWire
	if err := c.do(ctx, http.MethodGet, "/Users/profile", token, nil, &wire); err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{
		ID:          wire.profileID(),
		FullName:    wire.FullName,
		UserName:    wire.UserName,
		Email:       wire.Email,
		PhoneNumber: wire.PhoneNumber,
		City:        wire.City,
	}, nil
}
