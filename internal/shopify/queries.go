package shopify

import (
	"fmt"
	"strconv"
	"strings"
)

// UnpublishedProductsQuery fetches a bounded page of products matching a
// search query (e.g. "published_status:unpublished"), with variants.
const UnpublishedProductsQuery = `
query getUnpublishedProducts($first: Int!, $query: String) {
  products(first: $first, query: $query) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        status
        variants(first: 250) {
          edges {
            node {
              id
              sku
            }
          }
        }
      }
    }
  }
}
`

// ExtractIDFromGID extracts the numeric ID from a Shopify GID
// (e.g. "gid://shopify/Product/123" -> 123).
func ExtractIDFromGID(gid string) (int64, error) {
	parts := strings.Split(gid, "/")
	if len(parts) == 0 {
		return 0, fmt.Errorf("invalid GID: %s", gid)
	}
	id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid GID %s: %w", gid, err)
	}
	return id, nil
}
