package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/config"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/shopify"
)

// Lists unpublished products whose variant SKUs carry the reserved prefix,
// i.e. what the next sweep would delete.
// Usage:
//   go run cmd/list-temp-products/main.go

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

	fmt.Println("🔍 Fetching unpublished products from Shopify...")

	variables := map[string]interface{}{
		"first": 250,
		"query": "published_status:unpublished",
	}
	resp, err := client.Execute(context.Background(), shopify.UnpublishedProductsQuery, variables)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}

	var result struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Title    string `json:"title"`
					Variants struct {
						Edges []struct {
							Node struct {
								SKU string `json:"sku"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"variants"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	count := 0
	for _, edge := range result.Products.Edges {
		var skus []string
		for _, v := range edge.Node.Variants.Edges {
			if strings.HasPrefix(v.Node.SKU, cfg.SKUPrefix) {
				skus = append(skus, v.Node.SKU)
			}
		}
		if len(skus) == 0 {
			continue
		}
		count++
		fmt.Printf("  %s  %q  [%s]\n", edge.Node.ID, edge.Node.Title, strings.Join(skus, ", "))
	}

	fmt.Printf("Found %d temporary products\n", count)
}
