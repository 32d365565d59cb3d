package upstream

import (
	"context"

	"go-storefront/internal/domain"
)

//go:generate mockgen -source=upstream_api.go -destination=../mock/upstream/upstream_mock.go -package=mock

type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListBrands(ctx context.Context) ([]domain.Brand, error)
}

type CartAPI interface {
	GetCart(ctx context.Context, token string) (domain.Cart, error)
	AddToCart(ctx context.Context, token string, productID int64) error
	IncrementItem(ctx context.Context, token string, productID int64) error
	DecrementItem(ctx context.Context, token string, productID int64) error
	UpdateItemCount(ctx context.Context, token string, productID int64, count int) error
	RemoveItem(ctx context.Context, token string, productID int64) error
	ClearCart(ctx context.Context, token string) error
}

type ReviewAPI interface {
	ListReviews(ctx context.Context, productID int64) ([]domain.Review, error)
	CreateReview(ctx context.Context, token string, in NewReview) error
}

type CheckoutAPI interface {
	Pay(ctx context.Context, token string, method domain.PaymentMethod) (domain.PaymentResult, error)
}

type IdentityAPI interface {
	Login(ctx context.Context, in Credentials) (string, error)
	Register(ctx context.Context, in Registration) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in PasswordReset) error
	Profile(ctx context.Context, token string) (domain.Profile, error)
}

// Request bodies sent to the store API.

type NewReview struct {
	ProductID int64  `json:"productId"`
	Comment   string `json:"comment"`
	Rate      int    `json:"rate"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FullName    string `json:"fullName"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type PasswordReset struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}
