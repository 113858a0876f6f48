package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateSKU builds a reserved-prefix SKU with a millisecond timestamp plus
// a short random suffix, so concurrent requests in the same millisecond
// cannot collide.
func GenerateSKU(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
