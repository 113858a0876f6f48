package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/config"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/ledger"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/service"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/shopify"
)

// One-shot sweep of temporary products, without going through the server.
// Usage:
//   go run cmd/sweep/main.go

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Create Shopify client
	client := shopify.NewClient(cfg.Shopify, logger)
	cleaner := service.NewCleanupService(client, ledger.New(), cfg.SKUPrefix, logger)

	fmt.Printf("🧹 Sweeping unpublished products with SKU prefix %q...\n", cfg.SKUPrefix)

	result, err := cleaner.Sweep(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sweep failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted %d products\n", result.DeletedCount)
	for _, id := range result.Deleted {
		fmt.Printf("  - %d\n", id)
	}
}
