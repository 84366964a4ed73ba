package main

import (
	"context"   // Startup and shutdown deadlines
	"errors"    // Error matching
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"chat_storage/internal/api"    // Custom package for API handlers
	"chat_storage/internal/config" // Custom package for configuration
	"chat_storage/internal/db"     // Persistence gateway
	"chat_storage/internal/events" // Event publisher
	"chat_storage/internal/utils"  // Logger setup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	utils.SetupLogger(cfg.LogLevel, cfg.IsProd)

	store, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	defer store.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	// Schema creation is best-effort; the server still starts if it fails
	if err := store.EnsureSchema(startupCtx); err != nil {
		logrus.WithField("error", err.Error()).Error("Error creating tables")
	}
	publisher := events.Initialize(startupCtx, cfg) // nil when the broker is unavailable
	cancel()

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := api.NewRouter(store, publisher, cfg.JWTSecret)
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Info("Server running on " + cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logrus.Info("Shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithField("error", err.Error()).Error("HTTP shutdown failed")
	}
	// Flush events scheduled by the last requests, then release the broker
	if err := publisher.Shutdown(shutdownCtx); err != nil {
		logrus.WithField("error", err.Error()).Error("Event publisher close failed")
	} else if publisher != nil {
		logrus.Info("Event publisher closed")
	}
}
