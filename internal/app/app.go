// Package app builds the application context shared by every handler.
package app

import (
	"context"
	"fmt"

	"artisan_market/internal/config"
	"artisan_market/internal/notify"
	"artisan_market/internal/payment"
	"artisan_market/internal/repository"
	"artisan_market/internal/service"
	"artisan_market/internal/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App holds the configured collaborators. It is built once at start and passed to the router.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client // nil disables caching

	Users     repository.UserRepository
	Arts      repository.ArtRepository
	Carts     repository.CartRepository
	Wishlists repository.WishlistRepository
	Purchases repository.PurchaseRepository

	Gateway  payment.Gateway // nil when online payment is not configured
	Uploader storage.Uploader
	Mailer   notify.Mailer

	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Cart     *service.CartService
	Wishlist *service.WishlistService
	Art      *service.ArtService
	Profile  *service.ProfileService
}

// Option overrides a collaborator before services are built
type Option func(*App)

// WithGateway replaces the payment gateway
func WithGateway(g payment.Gateway) Option { return func(a *App) { a.Gateway = g } }

// WithUploader replaces the image uploader
func WithUploader(u storage.Uploader) Option { return func(a *App) { a.Uploader = u } }

// WithMailer replaces the mailer
func WithMailer(m notify.Mailer) Option { return func(a *App) { a.Mailer = m } }

// New wires repositories and services around db and rdb
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, opts ...Option) (*App, error) {
	a := &App{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Users:     repository.NewUserRepository(db),
		Arts:      repository.NewArtRepository(db),
		Carts:     repository.NewCartRepository(db),
		Wishlists: repository.NewWishlistRepository(db),
		Purchases: repository.NewPurchaseRepository(db),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Gateway == nil && cfg.RazorpayKeyID != "" {
		a.Gateway = payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	if a.Uploader == nil {
		up, err := storage.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		a.Uploader = up
	}
	if a.Mailer == nil {
		a.Mailer = notify.New(cfg)
	}

	a.Checkout = service.NewCheckoutService(a.Arts, a.Purchases, a.Users, a.Gateway, cfg.RazorpayKeySecret, rdb, a.Mailer)
	a.Orders = service.NewOrderService(a.Purchases, a.Arts, rdb, cfg.CacheTTL)
	a.Cart = service.NewCartService(a.Carts, a.Arts)
	a.Wishlist = service.NewWishlistService(a.Wishlists, a.Arts)
	a.Art = service.NewArtService(a.Arts, rdb, cfg.CacheTTL)
	a.Profile = service.NewProfileService(a.Users)
	return a, nil
}
