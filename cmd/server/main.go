package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/api"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/config"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/ledger"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/service"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting custom variant server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("sku_prefix", cfg.SKUPrefix),
	)

	// Wire collaborators
	client := shopify.NewClient(cfg.Shopify, logger)
	ldg := ledger.New()
	provisioner := service.NewProductService(client, ldg, cfg.SKUPrefix, logger)
	cleaner := service.NewCleanupService(client, ldg, cfg.SKUPrefix, logger)

	// Initialize router
	router := api.NewRouter(cfg, api.Deps{
		Provisioner: provisioner,
		Cleaner:     cleaner,
		Ledger:      ldg,
	}, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
