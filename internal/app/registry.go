package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-storefront/internal/auth"
	"go-storefront/internal/brand"
	"go-storefront/internal/cache"
	"go-storefront/internal/cart"
	"go-storefront/internal/category"
	"go-storefront/internal/checkout"
	"go-storefront/internal/config"
	"go-storefront/internal/outbox"
	"go-storefront/internal/pricing"
	"go-storefront/internal/product"
	"go-storefront/internal/review"
	"go-storefront/internal/upstream"
	"go-storefront/internal/wishlist"
)

type modules struct {
	client *upstream.Client
	loader *cache.Loader
	outbox outbox.Service
	rdb    redis.UniversalClient
}

// wishlistRepository keeps favorites in redis when it is available.
func (m modules) wishlistRepository() wishlist.Repository {
	if m.rdb == nil {
		return wishlist.NewMemoryRepository()
	}
	return wishlist.NewRedisRepository(m.rdb)
}

func registerModules(router *gin.Engine, cfg *config.Config, m modules, logger *zap.Logger) {
	shipping := pricing.ShippingPolicy{
		FreeThreshold: cfg.FreeShippingThreshold,
		FlatFee:       cfg.FlatShippingFee,
	}

	// --- Services ---
	productService := product.NewService(product.Deps{
		Catalog: m.client,
		Loader:  m.loader,
		Logger:  logger.Named("product"),
	})
	categoryService := category.NewService(m.client, m.loader, logger.Named("category"))
	brandService := brand.NewService(m.client, m.loader, logger.Named("brand"))
	reviewService := review.NewService(review.Deps{
		API:    m.client,
		Loader: m.loader,
		Outbox: m.outbox,
		Logger: logger.Named("review"),
	})
	cartService := cart.NewService(cart.Deps{
		API:         m.client,
		Loader:      m.loader,
		Outbox:      m.outbox,
		Shipping:    shipping,
		MaxQuantity: cfg.CartMaxQuantity,
		Logger:      logger.Named("cart"),
	})
	checkoutService := checkout.NewService(checkout.Deps{
		API:    m.client,
		Cart:   cartService,
		Outbox: m.outbox,
		Logger: logger.Named("checkout"),
	})
	wishlistService := wishlist.NewService(wishlist.Deps{
		Repo:    m.wishlistRepository(),
		Catalog: m.client,
		Loader:  m.loader,
		Logger:  logger.Named("wishlist"),
	})
	authService := auth.NewService(m.client, cartService, logger.Named("auth"))

	// --- Handlers ---
	productHandler := product.NewHandler(productService, logger)
	categoryHandler := category.NewHandler(categoryService)
	brandHandler := brand.NewHandler(brandService)
	reviewHandler := review.NewHandler(reviewService, logger)
	cartHandler := cart.NewHandler(cartService, logger)
	checkoutHandler := checkout.NewHandler(checkoutService, m.rdb, logger)
	wishlistHandler := wishlist.NewHandler(wishlistService)
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		brand.RegisterRoutes(api, brandHandler)
		category.RegisterRoutes(api, categoryHandler)
		product.RegisterRoutes(api, productHandler)
		review.RegisterRoutes(api, reviewHandler)
		cart.RegisterRoutes(api, cartHandler)
		checkout.RegisterRoutes(api, checkoutHandler, m.rdb)
		wishlist.RegisterRoutes(api, wishlistHandler)
	}
}
