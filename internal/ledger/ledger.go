// Package ledger keeps an in-memory registry of temporary products created by
// this process. The reserved SKU prefix remains the deletion criterion; the
// ledger exists so operators can see what this instance created and when.
package ledger

import (
	"sort"
	"sync"
	"time"
)

type Entry struct {
	ProductID int64     `json:"productId"`
	VariantID int64     `json:"variantId"`
	SKU       string    `json:"sku"`
	CreatedAt time.Time `json:"createdAt"`
}

type Ledger struct {
	mu      sync.RWMutex
	entries map[int64]Entry
}

func New() *Ledger {
	return &Ledger{
		entries: make(map[int64]Entry),
	}
}

// Record registers a created temporary product.
func (l *Ledger) Record(productID, variantID int64, sku string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[productID] = Entry{
		ProductID: productID,
		VariantID: variantID,
		SKU:       sku,
		CreatedAt: time.Now().UTC(),
	}
}

// Remove drops a product from the registry after deletion. Removing an
// unknown id is a no-op (the product may predate this process).
func (l *Ledger) Remove(productID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, productID)
}

// Entries returns a snapshot ordered by creation time, oldest first.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of tracked products.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
