package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/ledger"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/shopify"
	apperrors "github.com/Saravana0918/shopify-custom-variant-server/pkg/errors"
)

// sweepPageSize is the Admin API maximum; repeated sweeps drain larger backlogs.
const sweepPageSize = 250

// LineItem is the slice of an order-creation webhook this service cares about.
type LineItem struct {
	SKU       string
	VariantID int64
}

// CleanupResult partitions the per-product outcomes of a cleanup pass.
type CleanupResult struct {
	Deleted []int64
	Failed  []int64
}

// SweepResult reports what an admin sweep actually deleted.
type SweepResult struct {
	DeletedCount int     `json:"deletedCount"`
	Deleted      []int64 `json:"deleted"`
}

// CleanupService deletes temporary products identified by the reserved SKU prefix.
type CleanupService struct {
	client    *shopify.Client
	ledger    *ledger.Ledger
	skuPrefix string
	logger    *zap.Logger
}

func NewCleanupService(client *shopify.Client, ldg *ledger.Ledger, skuPrefix string, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		client:    client,
		ledger:    ldg,
		skuPrefix: skuPrefix,
		logger:    logger,
	}
}

// CleanupLineItems resolves reserved-prefix line items to their parent
// products and deletes them. Per-product failures are logged and skipped so
// one failure never aborts the rest.
func (s *CleanupService) CleanupLineItems(ctx context.Context, items []LineItem) CleanupResult {
	productIDs := make(map[int64]struct{})
	for _, item := range items {
		if !strings.HasPrefix(item.SKU, s.skuPrefix) || item.VariantID == 0 {
			continue
		}
		productID, err := s.resolveVariantProduct(ctx, item.VariantID)
		if err != nil {
			s.logger.Warn("Failed to resolve variant to product",
				zap.Int64("variant_id", item.VariantID),
				zap.String("sku", item.SKU),
				zap.Error(err),
			)
			continue
		}
		productIDs[productID] = struct{}{}
	}

	var result CleanupResult
	for productID := range productIDs {
		if err := s.DeleteProduct(ctx, productID); err != nil {
			s.logger.Warn("Failed to delete temporary product",
				zap.Int64("product_id", productID),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, productID)
			continue
		}
		result.Deleted = append(result.Deleted, productID)
	}
	return result
}

// Sweep scans one page of unpublished products and deletes those with at
// least one reserved-prefix variant SKU.
func (s *CleanupService) Sweep(ctx context.Context) (*SweepResult, error) {
	variables := map[string]interface{}{
		"first": sweepPageSize,
		"query": "published_status:unpublished",
	}
	resp, err := s.client.Execute(ctx, shopify.UnpublishedProductsQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("list unpublished products: %w", err)
	}

	var result sweepProductsPage
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &apperrors.ErrUpstreamParse{Err: err, Body: string(resp.Data)}
	}

	sweep := &SweepResult{Deleted: []int64{}}
	for _, edge := range result.Products.Edges {
		if !s.hasReservedSKU(edge) {
			continue
		}
		productID, err := shopify.ExtractIDFromGID(edge.Node.ID)
		if err != nil {
			s.logger.Warn("Skipping product with unparsable GID", zap.String("gid", edge.Node.ID), zap.Error(err))
			continue
		}
		if err := s.DeleteProduct(ctx, productID); err != nil {
			s.logger.Warn("Sweep failed to delete product",
				zap.Int64("product_id", productID),
				zap.String("title", edge.Node.Title),
				zap.Error(err),
			)
			continue
		}
		sweep.Deleted = append(sweep.Deleted, productID)
	}
	sweep.DeletedCount = len(sweep.Deleted)
	return sweep, nil
}

// DeleteProduct removes a product and prunes it from the ledger. Deleting an
// already-deleted product fails upstream with a 404, which callers treat as a
// per-item failure.
func (s *CleanupService) DeleteProduct(ctx context.Context, productID int64) error {
	_, err := s.client.Call(ctx, http.MethodDelete, fmt.Sprintf("products/%d.json", productID), nil)
	if err != nil {
		return err
	}
	s.ledger.Remove(productID)
	return nil
}

func (s *CleanupService) resolveVariantProduct(ctx context.Context, variantID int64) (int64, error) {
	raw, err := s.client.Call(ctx, http.MethodGet, fmt.Sprintf("variants/%d.json", variantID), nil)
	if err != nil {
		return 0, err
	}
	var resp shopify.VariantResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, &apperrors.ErrUpstreamParse{Err: err, Body: string(raw)}
	}
	if resp.Variant == nil || resp.Variant.ProductID == 0 {
		return 0, fmt.Errorf("variant %d has no parent product", variantID)
	}
	return resp.Variant.ProductID, nil
}

type sweepProductsPage struct {
	Products struct {
		Edges []sweepProductEdge `json:"edges"`
	} `json:"products"`
}

type sweepProductEdge struct {
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
}

func (s *CleanupService) hasReservedSKU(edge sweepProductEdge) bool {
	for _, v := range edge.Node.Variants.Edges {
		if strings.HasPrefix(v.Node.SKU, s.skuPrefix) {
			return true
		}
	}
	return false
}
