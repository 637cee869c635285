// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"artisan_market/internal/db"
	"artisan_market/internal/domain"
	"artisan_market/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret signs the session tokens minted by Token
const JWTSecret = "test-secret"

// NewDB returns a migrated in-memory SQLite database private to the test
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// CreateUser inserts a user with the given name and role
func CreateUser(t *testing.T, gdb *gorm.DB, name, role string) domain.User {
	t.Helper()
	u := domain.User{
		Name:     name,
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     role,
		Avatar:   domain.DefaultAvatar,
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

// CreateArt inserts a listing owned by artistID
func CreateArt(t *testing.T, gdb *gorm.DB, artistID uint, title string, price float64, category string) domain.Art {
	t.Helper()
	a := domain.Art{
		Title:    title,
		Price:    price,
		Category: category,
		ImageURL: "https://img.example.com/" + title + ".jpg",
		ArtistID: artistID,
	}
	require.NoError(t, gdb.Create(&a).Error)
	return a
}

// CreatePurchase inserts a completed purchase with the given shipping status
func CreatePurchase(t *testing.T, gdb *gorm.DB, art domain.Art, buyerID uint, price float64, shipping string, createdAt time.Time) domain.Purchase {
	t.Helper()
	p := domain.Purchase{
		BatchID:           uuid.NewString(),
		ArtID:             art.ID,
		BuyerID:           buyerID,
		ArtistID:          art.ArtistID,
		Price:             price,
		ArtTitle:          art.Title,
		ArtImage:          art.ImageURL,
		ArtCategory:       art.Category,
		Status:            domain.StatusCompleted,
		ShippingStatus:    shipping,
		EstimatedDelivery: createdAt.Add(domain.DeliveryWindow),
		PaymentMethod:     domain.PaymentCOD,
		CreatedAt:         createdAt,
	}
	if shipping == domain.ShippingDelivered {
		delivered := createdAt.Add(72 * time.Hour)
		p.DeliveredAt = &delivered
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

// CountPurchases returns the number of purchase rows
func CountPurchases(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&domain.Purchase{}).Count(&n).Error)
	return n
}

// Token mints a session token for user signed with JWTSecret
func Token(t *testing.T, user domain.User) string {
	t.Helper()
	tok, err := utils.GenerateJWT(user.ID, user.Role, JWTSecret, time.Hour)
	require.NoError(t, err)
	return tok
}
