package repository

import (
	"context"
	"time"

	"artisan_market/internal/domain"

	"gorm.io/gorm"
)

// PurchaseRepo is the GORM-backed PurchaseRepository
type PurchaseRepo struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a PurchaseRepo
func NewPurchaseRepository(db *gorm.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

// Create inserts one unit-level purchase
func (r *PurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// DeleteBatch removes every purchase written under batchID and reports how many
func (r *PurchaseRepo) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("batch_id = ?", batchID).Delete(&domain.Purchase{})
	return res.RowsAffected, res.Error
}

// FindByID loads one purchase
func (r *PurchaseRepo) FindByID(ctx context.Context, id uint) (*domain.Purchase, error) {
	var p domain.Purchase
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// UpdateShipping moves a purchase from one shipping status to another and, when given,
// stamps the delivery time. It reports false when the stored status is no longer from.
func (r *PurchaseRepo) UpdateShipping(ctx context.Context, id uint, from, to string, deliveredAt *time.Time) (bool, error) {
	fields := map[string]any{"shipping_status": to}
	if deliveredAt != nil {
		fields["delivered_at"] = *deliveredAt
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Purchase{}).
		Where("id = ? AND shipping_status = ?", id, from).
		Updates(fields)
	return res.RowsAffected == 1, res.Error
}

// BuyerOrders returns a buyer's completed purchases, newest first.
// Listing fields fall back to the purchase snapshot when the listing is gone.
func (r *PurchaseRepo) BuyerOrders(ctx context.Context, buyerID uint) ([]OrderRow, error) {
	rows := []OrderRow{}
	err := r.db.WithContext(ctx).
		Table("purchases").
		Select("purchases.id, " +
			"COALESCE(arts.title, purchases.art_title, '') AS art_title, " +
			"COALESCE(arts.image_url, purchases.art_image, '') AS art_image, " +
			"COALESCE(arts.category, purchases.art_category, '') AS art_category, " +
			"COALESCE(users.name, '') AS artist_name, " +
			"purchases.price, purchases.shipping_status, purchases.estimated_delivery, " +
			"purchases.delivered_at, purchases.created_at, purchases.updated_at").
		Joins("LEFT JOIN arts ON arts.id = purchases.art_id").
		Joins("LEFT JOIN users ON users.id = purchases.artist_id").
		Where("purchases.buyer_id = ? AND purchases.status = ?", buyerID, domain.StatusCompleted).
		Order("purchases.created_at DESC, purchases.id DESC").
		Scan(&rows).Error
	return rows, err
}

// ArtistSales returns an artist's completed sales, newest first
func (r *PurchaseRepo) ArtistSales(ctx context.Context, artistID uint) ([]SaleRow, error) {
	rows := []SaleRow{}
	err := r.db.WithContext(ctx).
		Table("purchases").
		Select("purchases.id, " +
			"COALESCE(arts.title, purchases.art_title, '') AS art_title, " +
			"COALESCE(arts.image_url, purchases.art_image, '') AS art_image, " +
			"COALESCE(users.name, '') AS buyer_name, " +
			"purchases.price, purchases.shipping_status, purchases.created_at").
		Joins("LEFT JOIN arts ON arts.id = purchases.art_id").
		Joins("LEFT JOIN users ON users.id = purchases.buyer_id").
		Where("purchases.artist_id = ? AND purchases.status = ?", artistID, domain.StatusCompleted).
		Order("purchases.created_at DESC, purchases.id DESC").
		Scan(&rows).Error
	return rows, err
}
