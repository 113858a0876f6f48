package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/ledger"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/shopify"
	apperrors "github.com/Saravana0918/shopify-custom-variant-server/pkg/errors"
)

const (
	defaultTitle = "Custom Product"
	defaultPrice = "0.00"
)

// CreateInput carries the customization request. Exactly one of ImageBase64
// or ImageURL must be usable.
type CreateInput struct {
	Title       string
	ImageBase64 string
	ImageURL    string
	Price       string
}

// CreatedProduct is what the frontend needs to add the variant to its cart.
type CreatedProduct struct {
	ProductID int64  `json:"productId"`
	VariantID int64  `json:"variantId"`
	SKU       string `json:"sku"`
}

// ProductService provisions hidden products wrapping customer images.
type ProductService struct {
	client    *shopify.Client
	ledger    *ledger.Ledger
	skuPrefix string
	logger    *zap.Logger
}

func NewProductService(client *shopify.Client, ldg *ledger.Ledger, skuPrefix string, logger *zap.Logger) *ProductService {
	return &ProductService{
		client:    client,
		ledger:    ldg,
		skuPrefix: skuPrefix,
		logger:    logger,
	}
}

// CreateHiddenProduct creates an unpublished product with a single variant
// whose SKU carries the reserved prefix, and returns the created identifiers.
func (s *ProductService) CreateHiddenProduct(ctx context.Context, in CreateInput) (*CreatedProduct, error) {
	image, err := buildImageInput(in)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultTitle
	}
	price := strings.TrimSpace(in.Price)
	if price == "" {
		price = defaultPrice
	}

	sku := GenerateSKU(s.skuPrefix)
	payload := shopify.ProductCreateRequest{
		Product: shopify.ProductInput{
			Title:     title,
			Status:    "draft",
			Published: false,
			Tags:      "temporary,custom-preview",
			Images:    []shopify.ImageInput{image},
			Variants: []shopify.VariantInput{
				{Price: price, SKU: sku},
			},
		},
	}

	raw, err := s.client.Call(ctx, http.MethodPost, "products.json", payload)
	if err != nil {
		return nil, err
	}

	var resp shopify.ProductResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &apperrors.ErrUpstreamParse{Err: err, Body: string(raw)}
	}
	if resp.Product == nil || resp.Product.ID == 0 {
		return nil, &apperrors.ErrProductCreation{Message: "upstream response has no product"}
	}
	if len(resp.Product.Variants) == 0 {
		return nil, &apperrors.ErrProductCreation{Message: "created product has no variants"}
	}

	variant := resp.Product.Variants[0]
	s.ledger.Record(resp.Product.ID, variant.ID, variant.SKU)
	s.logger.Info("Created hidden product",
		zap.Int64("product_id", resp.Product.ID),
		zap.Int64("variant_id", variant.ID),
		zap.String("sku", variant.SKU),
	)

	return &CreatedProduct{
		ProductID: resp.Product.ID,
		VariantID: variant.ID,
		SKU:       variant.SKU,
	}, nil
}

// buildImageInput prefers raw base64 bytes over a hosted URL; both forms are
// accepted by the Admin API on product creation.
func buildImageInput(in CreateInput) (shopify.ImageInput, error) {
	if b64 := strings.TrimSpace(in.ImageBase64); b64 != "" {
		b64 = stripDataURIPrefix(b64)
		if _, err := base64.StdEncoding.DecodeString(b64); err != nil {
			return shopify.ImageInput{}, &apperrors.ErrFileUpload{Message: "imageBase64 is not valid base64"}
		}
		return shopify.ImageInput{Attachment: b64}, nil
	}
	if url := strings.TrimSpace(in.ImageURL); url != "" {
		return shopify.ImageInput{Src: url}, nil
	}
	return shopify.ImageInput{}, &apperrors.ErrFileUpload{Message: "no usable image reference"}
}

// stripDataURIPrefix drops a "data:image/png;base64," style prefix when present.
func stripDataURIPrefix(s string) string {
	if i := strings.Index(s, "base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		return s[i+len("base64,"):]
	}
	return s
}
