package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/ledger"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/service"
)

func TestCleanupTempProducts(t *testing.T) {
	t.Parallel()

	cleaner := &fakeCleaner{sweepRes: &service.SweepResult{
		DeletedCount: 2,
		Deleted:      []int64{500, 700},
	}}
	router := gin.New()
	router.POST("/admin/cleanup-temp-products", HandleCleanupTempProducts(cleaner, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/admin/cleanup-temp-products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success      bool    `json:"success"`
		DeletedCount int     `json:"deletedCount"`
		Deleted      []int64 `json:"deleted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Success || resp.DeletedCount != 2 || len(resp.Deleted) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCleanupTempProducts_SweepError(t *testing.T) {
	t.Parallel()

	cleaner := &fakeCleaner{sweepErr: errors.New("list unpublished products: throttled")}
	router := gin.New()
	router.POST("/admin/cleanup-temp-products", HandleCleanupTempProducts(cleaner, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/admin/cleanup-temp-products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestListTempProducts(t *testing.T) {
	t.Parallel()

	ldg := ledger.New()
	ldg.Record(500, 101, "CUST-1")
	router := gin.New()
	router.GET("/admin/temp-products", HandleListTempProducts(ldg, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/admin/temp-products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool           `json:"success"`
		Count   int            `json:"count"`
		Entries []ledger.Entry `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 1 || len(resp.Entries) != 1 || resp.Entries[0].ProductID != 500 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
