package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/ledger"
)

// LedgerReader exposes the in-memory temp-product registry to handlers.
type LedgerReader interface {
	Entries() []ledger.Entry
	Len() int
}

// HandleCleanupTempProducts handles POST /admin/cleanup-temp-products.
// It scans one page of unpublished products and deletes those whose variant
// SKUs carry the reserved prefix.
func HandleCleanupTempProducts(cleaner ProductCleaner, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := cleaner.Sweep(c.Request.Context())
		if err != nil {
			logger.Error("Admin sweep failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		logger.Info("Admin sweep finished", zap.Int("deleted_count", result.DeletedCount))
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"deletedCount": result.DeletedCount,
			"deleted":      result.Deleted,
		})
	}
}

// HandleListTempProducts handles GET /admin/temp-products. Only products
// created by this process appear here; the sweep covers the rest.
func HandleListTempProducts(reader LedgerReader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   reader.Len(),
			"entries": reader.Entries(),
		})
	}
}
