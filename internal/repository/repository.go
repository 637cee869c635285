// Package repository hides GORM behind interfaces and returns typed projections
// for every joined read.
package repository

import (
	"context"
	"errors"
	"time"

	"artisan_market/internal/domain"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up record does not exist
var ErrNotFound = errors.New("record not found")

// ArtSummary is a listing joined with its artist's name
type ArtSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	ArtistID    uint      `json:"artistId"`
	ArtistName  string    `json:"artistName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ArtDetail is a listing joined with the public part of its artist's profile
type ArtDetail struct {
	ArtSummary
	ArtistBio   string `json:"artistBio"`
	ArtistEmail string `json:"artistEmail"`
}

// CartLine is one cart line joined with its listing. Art is nil when the listing was deleted.
type CartLine struct {
	ArtID    uint        `json:"artId"`
	Quantity int         `json:"quantity"`
	Art      *ArtSummary `json:"art"`
}

// OrderRow is a purchase as seen by its buyer
type OrderRow struct {
	ID                uint
	ArtTitle          string
	ArtImage          string
	ArtCategory       string
	ArtistName        string
	Price             float64
	ShippingStatus    string
	EstimatedDelivery time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SaleRow is a purchase as seen by its artist
type SaleRow struct {
	ID             uint
	ArtTitle       string
	ArtImage       string
	BuyerName      string
	Price          float64
	ShippingStatus string
	CreatedAt      time.Time
}

// UserRepository persists users
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*domain.User, error)
}

// ArtRepository persists listings
type ArtRepository interface {
	Create(ctx context.Context, art *domain.Art) error
	FindByID(ctx context.Context, id uint) (*domain.Art, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Art, error)
	ListSummaries(ctx context.Context) ([]ArtSummary, error)
	Detail(ctx context.Context, id uint) (*ArtDetail, error)
	Related(ctx context.Context, category string, excludeID uint, limit int) ([]ArtSummary, error)
	ListByArtist(ctx context.Context, artistID uint) ([]domain.Art, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*domain.Art, error)
	Delete(ctx context.Context, id uint) error
}

// CartRepository persists carts and their lines
type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*domain.Cart, error)
	FindByUser(ctx context.Context, userID uint) (*domain.Cart, error)
	AddItem(ctx context.Context, item *domain.CartItem) error
	AddUnit(ctx context.Context, cartID, artID uint) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, cartID, artID uint) error
	ClearItems(ctx context.Context, cartID uint) error
	Lines(ctx context.Context, cartID uint) ([]CartLine, error)
}

// WishlistRepository persists wishlists and their entries
type WishlistRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*domain.Wishlist, error)
	FindByUser(ctx context.Context, userID uint) (*domain.Wishlist, error)
	AddItem(ctx context.Context, wishlistID, artID uint) error
	RemoveItem(ctx context.Context, wishlistID, artID uint) error
	ClearItems(ctx context.Context, wishlistID uint) error
	Entries(ctx context.Context, wishlistID uint) ([]ArtSummary, error)
}

// PurchaseRepository persists unit-level purchase records
type PurchaseRepository interface {
	Create(ctx context.Context, p *domain.Purchase) error
	DeleteBatch(ctx context.Context, batchID string) (int64, error)
	FindByID(ctx context.Context, id uint) (*domain.Purchase, error)
	UpdateShipping(ctx context.Context, id uint, from, to string, deliveredAt *time.Time) (bool, error)
	BuyerOrders(ctx context.Context, buyerID uint) ([]OrderRow, error)
	ArtistSales(ctx context.Context, artistID uint) ([]SaleRow, error)
}

// translate maps GORM's not-found sentinel onto ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
