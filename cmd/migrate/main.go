package main

import (
	"context" // Migration deadline
	"time"    // Timeout

	"chat_storage/internal/config" // Custom import path (Config)
	"chat_storage/internal/db"     // Custom import path (Database)
	"chat_storage/internal/utils"  // Logger setup

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	utils.SetupLogger(cfg.LogLevel, cfg.IsProd)

	store, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := store.EnsureSchema(ctx); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
