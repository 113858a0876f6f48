package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/service"
	"github.com/Saravana0918/shopify-custom-variant-server/pkg/errors"
)

// ProductProvisioner creates hidden products for customization requests.
type ProductProvisioner interface {
	CreateHiddenProduct(ctx context.Context, in service.CreateInput) (*service.CreatedProduct, error)
}

// CreateCustomProductRequest represents the customization request from the storefront
type CreateCustomProductRequest struct {
	Title       string `json:"title"`
	ImageBase64 string `json:"imageBase64"`
	ImageURL    string `json:"imageUrl"`
	Price       string `json:"price"`
}

// HandleCreateCustomProduct handles POST /api/create-custom-product.
// The created variant id is what the frontend adds to its cart.
func HandleCreateCustomProduct(provisioner ProductProvisioner, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCustomProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid JSON body"})
			return
		}

		if strings.TrimSpace(req.ImageBase64) == "" && strings.TrimSpace(req.ImageURL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "imageBase64 is required"})
			return
		}

		created, err := provisioner.CreateHiddenProduct(c.Request.Context(), service.CreateInput{
			Title:       req.Title,
			ImageBase64: req.ImageBase64,
			ImageURL:    req.ImageURL,
			Price:       req.Price,
		})
		if err != nil {
			switch err.(type) {
			case *errors.ErrValidation, *errors.ErrFileUpload:
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			default:
				// Verbose on purpose: the upstream error detail is what the
				// operator needs to debug a failed creation.
				logger.Error("Failed to create custom product", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"productId": created.ProductID,
			"variantId": created.VariantID,
			"sku":       created.SKU,
		})
	}
}
