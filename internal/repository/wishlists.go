package repository

import (
	"context"

	"artisan_market/internal/domain"

	"gorm.io/gorm"
)

// WishlistRepo is the GORM-backed WishlistRepository
type WishlistRepo struct {
	db *gorm.DB
}

// NewWishlistRepository creates a WishlistRepo
func NewWishlistRepository(db *gorm.DB) *WishlistRepo {
	return &WishlistRepo{db: db}
}

// GetOrCreate returns the user's wishlist, creating an empty one on first access
func (r *WishlistRepo) GetOrCreate(ctx context.Context, userID uint) (*domain.Wishlist, error) {
	wl := domain.Wishlist{UserID: userID}
	if err := r.db.WithContext(ctx).Where(domain.Wishlist{UserID: userID}).FirstOrCreate(&wl).Error; err != nil {
		return nil, err
	}
	return &wl, r.loadItems(ctx, &wl)
}

// FindByUser returns the user's wishlist or ErrNotFound
func (r *WishlistRepo) FindByUser(ctx context.Context, userID uint) (*domain.Wishlist, error) {
	var wl domain.Wishlist
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wl).Error; err != nil {
		return nil, translate(err)
	}
	return &wl, r.loadItems(ctx, &wl)
}

func (r *WishlistRepo) loadItems(ctx context.Context, wl *domain.Wishlist) error {
	wl.Items = []domain.WishlistItem{}
	return r.db.WithContext(ctx).Where("wishlist_id = ?", wl.ID).Order("id ASC").Find(&wl.Items).Error
}

// AddItem appends an entry without checking for duplicates
func (r *WishlistRepo) AddItem(ctx context.Context, wishlistID, artID uint) error {
	return r.db.WithContext(ctx).Create(&domain.WishlistItem{WishlistID: wishlistID, ArtID: artID}).Error
}

// RemoveItem deletes the entry for artID, if any
func (r *WishlistRepo) RemoveItem(ctx context.Context, wishlistID, artID uint) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ? AND art_id = ?", wishlistID, artID).
		Delete(&domain.WishlistItem{}).Error
}

// ClearItems empties the wishlist. The wishlist record itself persists.
func (r *WishlistRepo) ClearItems(ctx context.Context, wishlistID uint) error {
	return r.db.WithContext(ctx).Where("wishlist_id = ?", wishlistID).Delete(&domain.WishlistItem{}).Error
}

// Entries returns the saved listings that still exist, in insertion order
func (r *WishlistRepo) Entries(ctx context.Context, wishlistID uint) ([]ArtSummary, error) {
	rows := []ArtSummary{}
	err := r.db.WithContext(ctx).
		Table("wishlist_items").
		Select(artSummaryColumns).
		Joins("JOIN arts ON arts.id = wishlist_items.art_id").
		Joins("LEFT JOIN users ON users.id = arts.artist_id").
		Where("wishlist_items.wishlist_id = ?", wishlistID).
		Order("wishlist_items.id ASC").
		Scan(&rows).Error
	return rows, err
}
