// Package interfaces defines core abstractions for the pharmacy API
// to improve testability and separation of concerns.
package interfaces

import (
	"context"

	"github.com/openrx/pharmacy-api/catalog"
)

// CatalogStore is the read/write contract of the medicine catalog. It is
// the single source of truth for availability; Reserve and Release are the
// only ways stock moves in and out of carts.
type CatalogStore interface {
	// Lookup and browsing
	Get(id string) (catalog.Medicine, bool)
	List() []catalog.Medicine
	Len() int
	Search(term string) []catalog.Medicine
	ByCategory(category string) []catalog.Medicine
	Categories() []catalog.CategoryCount
	TotalStock() int

	// Stock mutation
	SetStock(id string, stock int) error
	Reserve(id string, n int) (int, error)
	Release(id string, n int) (int, error)
}

// TextExtractor turns an uploaded prescription document into plain text.
// Implementations may take time (simulated OCR has a fixed delay) but must
// always complete once started; there is no cancellation of a running
// extraction.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, payload []byte) (string, error)
}

// Scheduler manages background jobs such as the periodic inventory audit.
type Scheduler interface {
	Start() error
	Stop()
}
