package db

import (
	"artisan_market/internal/domain" // Importing domain models

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/logger"  // GORM logger levels
)

// Models lists every table owned by the application
var Models = []any{
	&domain.User{},
	&domain.Art{},
	&domain.Cart{},
	&domain.CartItem{},
	&domain.Wishlist{},
	&domain.WishlistItem{},
	&domain.Purchase{},
}

// Connect opens a MySQL connection pool for the given DSN
func Connect(dsn string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	return gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(level)})
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	return db.AutoMigrate(Models...)
}
