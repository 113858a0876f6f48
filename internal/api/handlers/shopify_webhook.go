package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/config"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/service"
)

// ProductCleaner deletes temporary products resolved from order line items.
type ProductCleaner interface {
	CleanupLineItems(ctx context.Context, items []service.LineItem) service.CleanupResult
	Sweep(ctx context.Context) (*service.SweepResult, error)
}

type orderCreatePayload struct {
	ID        int64           `json:"id"`
	LineItems []orderLineItem `json:"line_items"`
}

type orderLineItem struct {
	SKU       string `json:"sku"`
	VariantID int64  `json:"variant_id"`
}

func verifyShopifyHMAC(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	// constant-time compare
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(header)))
}

// HandleOrdersCreateWebhook handles POST /webhooks/orders/create.
// Configure the Shopify webhook topic orders/create to point here.
// Once the real order exists, the temporary products carrying the preview
// images are deleted. Shopify retries failed deliveries, so the handler
// answers 200 after parsing even when some deletions fail.
func HandleOrdersCreateWebhook(cfg *config.Config, cleaner ProductCleaner, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Read raw body (Shopify HMAC is computed over raw bytes)
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		secret := strings.TrimSpace(cfg.WebhookSecret)
		if secret == "" {
			logger.Warn("SHOPIFY_WEBHOOK_SECRET not set, skipping signature verification")
		} else if !verifyShopifyHMAC(secret, bodyBytes, c.GetHeader("X-Shopify-Hmac-Sha256")) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
			return
		}

		var order orderCreatePayload
		if err := json.Unmarshal(bodyBytes, &order); err != nil {
			logger.Error("Webhook body is not valid JSON", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid JSON", "details": err.Error()})
			return
		}

		items := make([]service.LineItem, 0, len(order.LineItems))
		for _, li := range order.LineItems {
			items = append(items, service.LineItem{SKU: li.SKU, VariantID: li.VariantID})
		}

		result := cleaner.CleanupLineItems(c.Request.Context(), items)
		if len(result.Failed) > 0 {
			logger.Warn("Some temporary products were not deleted; the admin sweep will retry them",
				zap.Int64s("failed", result.Failed),
				zap.Int64("order_id", order.ID),
			)
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":      true,
			"deleted": len(result.Deleted),
			"topic":   c.GetHeader("X-Shopify-Topic"),
		})
	}
}
