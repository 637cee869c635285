package main

import (
	"artisan_market/internal/config" // Custom import path (Config)
	"artisan_market/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Connect(cfg.DSN(), true)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}
	logrus.Info("Database migrated successfully")
}
