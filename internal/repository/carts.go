package repository

import (
	"context"
	"time"

	"artisan_market/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepo is the GORM-backed CartRepository
type CartRepo struct {
	db *gorm.DB
}

// NewCartRepository creates a CartRepo
func NewCartRepository(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db}
}

// GetOrCreate returns the user's cart, creating an empty one on first access
func (r *CartRepo) GetOrCreate(ctx context.Context, userID uint) (*domain.Cart, error) {
	cart := domain.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Where(domain.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, r.loadItems(ctx, &cart)
}

// FindByUser returns the user's cart or ErrNotFound
func (r *CartRepo) FindByUser(ctx context.Context, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, translate(err)
	}
	return &cart, r.loadItems(ctx, &cart)
}

func (r *CartRepo) loadItems(ctx context.Context, cart *domain.Cart) error {
	cart.Items = []domain.CartItem{}
	return r.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Order("id ASC").Find(&cart.Items).Error
}

// AddItem appends a new line
func (r *CartRepo) AddItem(ctx context.Context, item *domain.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// AddUnit inserts a line at quantity 1, or bumps the existing line in the same statement
func (r *CartRepo) AddUnit(ctx context.Context, cartID, artID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "art_id"}},
			DoUpdates: clause.Assignments(map[string]any{"quantity": gorm.Expr("quantity + ?", 1)}),
		}).
		Create(&domain.CartItem{CartID: cartID, ArtID: artID, Quantity: 1}).Error
}

// UpdateItemQuantity overwrites a line's quantity
func (r *CartRepo) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// RemoveItem deletes the line holding artID, if any
func (r *CartRepo) RemoveItem(ctx context.Context, cartID, artID uint) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND art_id = ?", cartID, artID).
		Delete(&domain.CartItem{}).Error
}

// ClearItems empties the cart. The cart record itself persists.
func (r *CartRepo) ClearItems(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error
}

type cartLineRow struct {
	ArtID       uint
	Quantity    int
	FoundID     *uint
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	ArtistID    *uint
	ArtistName  string
	CreatedAt   *time.Time
}

// Lines returns the cart's lines joined with their listings, in insertion order
func (r *CartRepo) Lines(ctx context.Context, cartID uint) ([]CartLine, error) {
	var rows []cartLineRow
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.art_id, cart_items.quantity, arts.id AS found_id, arts.title, arts.description, " +
			"arts.price, arts.category, arts.image_url, arts.artist_id, COALESCE(users.name, '') AS artist_name, arts.created_at").
		Joins("LEFT JOIN arts ON arts.id = cart_items.art_id").
		Joins("LEFT JOIN users ON users.id = arts.artist_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]CartLine, 0, len(rows))
	for _, row := range rows {
		line := CartLine{ArtID: row.ArtID, Quantity: row.Quantity}
		if row.FoundID != nil {
			line.Art = &ArtSummary{
				ID:          *row.FoundID,
				Title:       deref(row.Title),
				Description: deref(row.Description),
				Price:       derefFloat(row.Price),
				Category:    deref(row.Category),
				ImageURL:    deref(row.ImageURL),
				ArtistName:  row.ArtistName,
			}
			if row.ArtistID != nil {
				line.Art.ArtistID = *row.ArtistID
			}
			if row.CreatedAt != nil {
				line.Art.CreatedAt = *row.CreatedAt
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
