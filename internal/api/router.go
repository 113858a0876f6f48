package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/api/handlers"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/api/middleware"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/config"
)

// Deps bundles the collaborators the routes need.
type Deps struct {
	Provisioner handlers.ProductProvisioner
	Cleaner     handlers.ProductCleaner
	Ledger      handlers.LedgerReader
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	if cfg.AdminAPIKey == "" {
		logger.Warn("ADMIN_API_KEY not set, /admin routes are open")
	}

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Shopify Custom Variant Server",
			"endpoints": []string{
				"GET /health",
				"POST /api/create-custom-product",
				"POST /webhooks/orders/create",
				"POST /admin/cleanup-temp-products",
				"GET /admin/temp-products",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// Storefront-facing creation endpoint
	router.POST("/api/create-custom-product", handlers.HandleCreateCustomProduct(deps.Provisioner, logger))

	// Shopify webhook: order creation triggers deletion of the temporary products
	router.POST("/webhooks/orders/create", handlers.HandleOrdersCreateWebhook(cfg, deps.Cleaner, logger))

	// Admin routes (shared-key guarded)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AdminKeyMiddleware(cfg.AdminAPIKey, logger))
	{
		adminRoutes.POST("/cleanup-temp-products", handlers.HandleCleanupTempProducts(deps.Cleaner, logger))
		adminRoutes.GET("/temp-products", handlers.HandleListTempProducts(deps.Ledger, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
