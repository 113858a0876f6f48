package api

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/config"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/ledger"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/service"
	"github.com/Saravana0918/shopify-custom-variant-server/internal/shopify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeShopify is a minimal in-memory Admin API: product create, variant
// lookup, product delete.
type fakeShopify struct {
	mu           sync.Mutex
	nextID       int64
	products     map[int64]string // product id -> sku
	variantOwner map[int64]int64  // variant id -> product id
}

func newFakeShopify() *fakeShopify {
	return &fakeShopify{
		nextID:       1000,
		products:     make(map[int64]string),
		variantOwner: make(map[int64]int64),
	}
}

func (f *fakeShopify) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/products.json"):
			var req shopify.ProductCreateRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.nextID++
			productID := f.nextID
			f.nextID++
			variantID := f.nextID
			sku := req.Product.Variants[0].SKU
			f.products[productID] = sku
			f.variantOwner[variantID] = productID
			fmt.Fprintf(w, `{"product":{"id":%d,"title":%q,"variants":[{"id":%d,"product_id":%d,"sku":%q,"price":%q}]}}`,
				productID, req.Product.Title, variantID, productID, sku, req.Product.Variants[0].Price)

		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/variants/"):
			var variantID int64
			fmt.Sscanf(r.URL.Path, "/admin/api/2026-01/variants/%d.json", &variantID)
			productID, ok := f.variantOwner[variantID]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"errors":"Not Found"}`))
				return
			}
			fmt.Fprintf(w, `{"variant":{"id":%d,"product_id":%d}}`, variantID, productID)

		case r.Method == http.MethodDelete && strings.Contains(r.URL.Path, "/products/"):
			var productID int64
			fmt.Sscanf(r.URL.Path, "/admin/api/2026-01/products/%d.json", &productID)
			if _, ok := f.products[productID]; !ok {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"errors":"Not Found"}`))
				return
			}
			delete(f.products, productID)
			w.Write([]byte(`{}`))

		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":"Not Found"}`))
		}
	})
}

func newTestRouter(t *testing.T, upstream *fakeShopify, webhookSecret, adminKey string) (*gin.Engine, *ledger.Ledger) {
	t.Helper()

	ts := httptest.NewServer(upstream.handler())
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		Port:        "0",
		Environment: "test",
		Shopify: config.ShopifyConfig{
			ShopDomain:  ts.URL,
			AccessToken: "test-token",
			APIVersion:  "2026-01",
		},
		SKUPrefix:     "CUST-",
		WebhookSecret: webhookSecret,
		AdminAPIKey:   adminKey,
	}

	logger := zap.NewNop()
	client := shopify.NewClient(cfg.Shopify, logger)
	ldg := ledger.New()
	router := NewRouter(cfg, Deps{
		Provisioner: service.NewProductService(client, ldg, cfg.SKUPrefix, logger),
		Cleaner:     service.NewCleanupService(client, ldg, cfg.SKUPrefix, logger),
		Ledger:      ldg,
	}, logger)
	return router, ldg
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, newFakeShopify(), "", "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreateThenWebhookDeletes(t *testing.T) {
	t.Parallel()

	upstream := newFakeShopify()
	secret := "webhook-secret"
	router, ldg := newTestRouter(t, upstream, secret, "")

	// Step 1: storefront creates a custom product
	image := base64.StdEncoding.EncodeToString([]byte("jersey-preview"))
	createBody := fmt.Sprintf(`{"title":"Custom Jersey","imageBase64":%q,"price":"499.00"}`, image)
	req := httptest.NewRequest(http.MethodPost, "/api/create-custom-product", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Success   bool   `json:"success"`
		ProductID int64  `json:"productId"`
		VariantID int64  `json:"variantId"`
		SKU       string `json:"sku"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("create: failed to parse response: %v", err)
	}
	if created.VariantID == 0 {
		t.Fatal("create: expected variantId to be set")
	}
	if matched := regexp.MustCompile(`^CUST-\d+`).MatchString(created.SKU); !matched {
		t.Fatalf("create: sku %q does not match ^CUST-\\d+", created.SKU)
	}
	if ldg.Len() != 1 {
		t.Fatalf("expected 1 ledger entry after create, got %d", ldg.Len())
	}

	// Step 2: Shopify delivers the order-creation webhook for that variant
	webhookBody := []byte(fmt.Sprintf(
		`{"id":9001,"line_items":[{"sku":%q,"variant_id":%d},{"sku":"REGULAR-TEE","variant_id":1}]}`,
		created.SKU, created.VariantID,
	))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(webhookBody)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req = httptest.NewRequest(http.MethodPost, "/webhooks/orders/create", bytes.NewReader(webhookBody))
	req.Header.Set("X-Shopify-Hmac-Sha256", signature)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("webhook: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	upstream.mu.Lock()
	_, stillThere := upstream.products[created.ProductID]
	upstream.mu.Unlock()
	if stillThere {
		t.Fatal("expected temporary product to be deleted after webhook")
	}
	if ldg.Len() != 0 {
		t.Fatalf("expected ledger pruned after webhook, got %d entries", ldg.Len())
	}
}

func TestAdminRoutesGuarded(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, newFakeShopify(), "", "admin-key")

	req := httptest.NewRequest(http.MethodGet, "/admin/temp-products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin key, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/temp-products", nil)
	req.Header.Set("x-admin-key", "admin-key")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with admin key, got %d", rec.Code)
	}
}
