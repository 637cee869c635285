package service

import (
	"context"
	"errors"
	"time"

	"artisan_market/internal/apperr"
	"artisan_market/internal/domain"
	"artisan_market/internal/repository"
	"artisan_market/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const unknown = "Unknown"

// ActiveOrder is a purchase that has not been delivered yet
type ActiveOrder struct {
	ID                uint      `json:"id"`
	ArtTitle          string    `json:"artTitle"`
	ArtImage          string    `json:"artImage"`
	ArtCategory       string    `json:"artCategory"`
	ArtistName        string    `json:"artistName"`
	Price             float64   `json:"price"`
	ShippingStatus    string    `json:"shippingStatus"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	PurchasedAt       time.Time `json:"purchasedAt"`
}

// PastOrder is a delivered purchase
type PastOrder struct {
	ID             uint      `json:"id"`
	ArtTitle       string    `json:"artTitle"`
	ArtImage       string    `json:"artImage"`
	ArtCategory    string    `json:"artCategory"`
	ArtistName     string    `json:"artistName"`
	Price          float64   `json:"price"`
	ShippingStatus string    `json:"shippingStatus"`
	DeliveredAt    time.Time `json:"deliveredAt"`
	PurchasedAt    time.Time `json:"purchasedAt"`
}

// BuyerOrders is the buyer's order page
type BuyerOrders struct {
	ActiveOrders []ActiveOrder `json:"activeOrders"`
	PastOrders   []PastOrder   `json:"pastOrders"`
}

// ListingEntry is one of an artist's listings on their dashboard
type ListingEntry struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaleEntry is one unit sold by an artist
type SaleEntry struct {
	ID             uint      `json:"id"`
	ArtTitle       string    `json:"artTitle"`
	ArtImage       string    `json:"artImage"`
	BuyerName      string    `json:"buyerName"`
	Price          float64   `json:"price"`
	ShippingStatus string    `json:"shippingStatus"`
	PurchasedAt    time.Time `json:"purchasedAt"`
}

// ArtistStats is the artist dashboard
type ArtistStats struct {
	Listings      []ListingEntry `json:"listings"`
	Sales         []SaleEntry    `json:"sales"`
	TotalSales    float64        `json:"totalSales"`
	ListingsCount int            `json:"listingsCount"`
	SalesCount    int            `json:"salesCount"`
}

// PurchaseEntry is one unit bought, as shown on the buyer dashboard
type PurchaseEntry struct {
	ID          uint      `json:"id"`
	ArtTitle    string    `json:"artTitle"`
	ArtImage    string    `json:"artImage"`
	ArtCategory string    `json:"artCategory"`
	ArtistName  string    `json:"artistName"`
	Price       float64   `json:"price"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// BuyerStats is the buyer dashboard
type BuyerStats struct {
	Purchases     []PurchaseEntry `json:"purchases"`
	TotalSpent    float64         `json:"totalSpent"`
	PurchaseCount int             `json:"purchaseCount"`
}

// OrderService reads purchase history and advances shipping
type OrderService struct {
	purchases repository.PurchaseRepository
	arts      repository.ArtRepository
	rdb       *redis.Client
	ttl       time.Duration
	now       func() time.Time
}

// NewOrderService creates an OrderService. rdb may be nil to disable caching.
func NewOrderService(purchases repository.PurchaseRepository, arts repository.ArtRepository, rdb *redis.Client, ttl time.Duration) *OrderService {
	return &OrderService{purchases: purchases, arts: arts, rdb: rdb, ttl: ttl, now: time.Now}
}

// BuyerOrders splits the buyer's completed purchases into active and past, newest first
func (s *OrderService) BuyerOrders(ctx context.Context, buyerID uint) (*BuyerOrders, error) {
	rows, err := s.purchases.BuyerOrders(ctx, buyerID)
	if err != nil {
		return nil, apperr.Internal("Error fetching orders", err)
	}
	out := &BuyerOrders{ActiveOrders: []ActiveOrder{}, PastOrders: []PastOrder{}}
	for _, r := range rows {
		if r.ShippingStatus == domain.ShippingDelivered {
			delivered := r.UpdatedAt
			if r.DeliveredAt != nil {
				delivered = *r.DeliveredAt
			}
			out.PastOrders = append(out.PastOrders, PastOrder{
				ID:             r.ID,
				ArtTitle:       orUnknown(r.ArtTitle),
				ArtImage:       r.ArtImage,
				ArtCategory:    r.ArtCategory,
				ArtistName:     orUnknown(r.ArtistName),
				Price:          r.Price,
				ShippingStatus: domain.ShippingDelivered,
				DeliveredAt:    delivered,
				PurchasedAt:    r.CreatedAt,
			})
			continue
		}
		status := r.ShippingStatus
		if status == "" {
			status = domain.ShippingProcessing
		}
		eta := r.EstimatedDelivery
		if eta.IsZero() {
			eta = r.CreatedAt.Add(domain.DeliveryWindow)
		}
		out.ActiveOrders = append(out.ActiveOrders, ActiveOrder{
			ID:                r.ID,
			ArtTitle:          orUnknown(r.ArtTitle),
			ArtImage:          r.ArtImage,
			ArtCategory:       r.ArtCategory,
			ArtistName:        orUnknown(r.ArtistName),
			Price:             r.Price,
			ShippingStatus:    status,
			EstimatedDelivery: eta,
			PurchasedAt:       r.CreatedAt,
		})
	}
	return out, nil
}

// ArtistStats builds the artist dashboard, served from Redis while fresh
func (s *OrderService) ArtistStats(ctx context.Context, artistID uint) (*ArtistStats, error) {
	key := utils.ArtistStatsCacheKey(artistID)
	var cached ArtistStats
	if hit, err := utils.GetCache(ctx, s.rdb, key, &cached); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
	} else if hit {
		return &cached, nil
	}

	arts, err := s.arts.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, apperr.Internal("Error fetching artist statistics", err)
	}
	sales, err := s.purchases.ArtistSales(ctx, artistID)
	if err != nil {
		return nil, apperr.Internal("Error fetching artist statistics", err)
	}

	stats := &ArtistStats{
		Listings:      make([]ListingEntry, 0, len(arts)),
		Sales:         make([]SaleEntry, 0, len(sales)),
		ListingsCount: len(arts),
		SalesCount:    len(sales),
	}
	for _, a := range arts {
		stats.Listings = append(stats.Listings, ListingEntry{
			ID:        a.ID,
			Title:     a.Title,
			Price:     a.Price,
			ImageURL:  a.ImageURL,
			Category:  a.Category,
			CreatedAt: a.CreatedAt,
		})
	}
	total := decimal.Zero
	for _, r := range sales {
		total = total.Add(decimal.NewFromFloat(r.Price))
		stats.Sales = append(stats.Sales, SaleEntry{
			ID:             r.ID,
			ArtTitle:       orUnknown(r.ArtTitle),
			ArtImage:       r.ArtImage,
			BuyerName:      orUnknown(r.BuyerName),
			Price:          r.Price,
			ShippingStatus: r.ShippingStatus,
			PurchasedAt:    r.CreatedAt,
		})
	}
	stats.TotalSales = total.InexactFloat64()

	if err := utils.SetCache(ctx, s.rdb, key, stats, s.ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	return stats, nil
}

// BuyerStats builds the buyer dashboard
func (s *OrderService) BuyerStats(ctx context.Context, buyerID uint) (*BuyerStats, error) {
	rows, err := s.purchases.BuyerOrders(ctx, buyerID)
	if err != nil {
		return nil, apperr.Internal("Error fetching buyer statistics", err)
	}
	stats := &BuyerStats{Purchases: make([]PurchaseEntry, 0, len(rows)), PurchaseCount: len(rows)}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(decimal.NewFromFloat(r.Price))
		stats.Purchases = append(stats.Purchases, PurchaseEntry{
			ID:          r.ID,
			ArtTitle:    orUnknown(r.ArtTitle),
			ArtImage:    r.ArtImage,
			ArtCategory: r.ArtCategory,
			ArtistName:  orUnknown(r.ArtistName),
			Price:       r.Price,
			PurchasedAt: r.CreatedAt,
		})
	}
	stats.TotalSpent = total.InexactFloat64()
	return stats, nil
}

// UpdateShipping advances a sold unit's shipping status. Only the selling artist may
// do this and the status never moves backwards.
func (s *OrderService) UpdateShipping(ctx context.Context, artistID, purchaseID uint, status string) (*domain.Purchase, error) {
	next := domain.ShippingRank(status)
	if next < 0 {
		return nil, apperr.Validation("Invalid shipping status")
	}
	p, err := s.purchases.FindByID(ctx, purchaseID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Order not found")
	} else if err != nil {
		return nil, apperr.Internal("Error updating order", err)
	}
	if p.ArtistID != artistID {
		return nil, apperr.Forbidden("You can only update your own sales")
	}
	if next <= domain.ShippingRank(p.ShippingStatus) {
		return nil, apperr.Validation("Shipping status can only move forward")
	}

	var deliveredAt *time.Time
	if status == domain.ShippingDelivered {
		now := s.now()
		deliveredAt = &now
	}
	// Conditional on the status read above, so a concurrent update cannot be rolled back
	moved, err := s.purchases.UpdateShipping(ctx, purchaseID, p.ShippingStatus, status, deliveredAt)
	if err != nil {
		return nil, apperr.Internal("Error updating order", err)
	}
	if !moved {
		return nil, apperr.Validation("Shipping status can only move forward")
	}
	if err := utils.DeleteCache(ctx, s.rdb, utils.ArtistStatsCacheKey(artistID)); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate artist stats cache")
	}
	logrus.WithFields(logrus.Fields{
		"purchase_id": purchaseID,
		"artist_id":   artistID,
		"from":        p.ShippingStatus,
		"to":          status,
	}).Info("Shipping status updated")

	p.ShippingStatus = status
	if deliveredAt != nil {
		p.DeliveredAt = deliveredAt
	}
	return p, nil
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
