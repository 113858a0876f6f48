package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Saravana0918/shopify-custom-variant-server/internal/config"
	apperrors "github.com/Saravana0918/shopify-custom-variant-server/pkg/errors"
)

type Client struct {
	baseURL     string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Shopify Admin API client.
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	// Normalize shop domain - remove scheme and trailing slashes.
	// An explicit http:// prefix keeps plain HTTP (local dev and tests).
	shopDomain := cfg.ShopDomain
	scheme := "https"
	if strings.HasPrefix(shopDomain, "http://") {
		scheme = "http"
	}
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")

	return &Client{
		baseURL:     fmt.Sprintf("%s://%s/admin/api/%s", scheme, shopDomain, cfg.APIVersion),
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Call issues a REST Admin API request. path is relative to the versioned API
// root (e.g. "products.json"). body is marshaled as JSON when non-nil.
// Non-2xx responses return *errors.ErrUpstreamAPI with the raw body.
func (c *Client) Call(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimPrefix(path, "/"))

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperrors.ErrUpstreamAPI{Status: resp.StatusCode, Body: string(respBody)}
	}

	if len(respBody) == 0 {
		// DELETE responses may carry an empty body
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(respBody) {
		return nil, &apperrors.ErrUpstreamParse{
			Err:  fmt.Errorf("invalid JSON"),
			Body: string(respBody),
		}
	}

	return json.RawMessage(respBody), nil
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Execute executes a GraphQL query/mutation against the Admin API.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	raw, err := c.Call(ctx, http.MethodPost, "graphql.json", GraphQLRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, err
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(raw, &graphQLResp); err != nil {
		return nil, &apperrors.ErrUpstreamParse{Err: err, Body: string(raw)}
	}

	if len(graphQLResp.Errors) > 0 {
		errorMessages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			errorMessages[i] = gqlErr.Message
		}
		return nil, fmt.Errorf("graphQL errors: %s", strings.Join(errorMessages, "; "))
	}

	return &graphQLResp, nil
}
