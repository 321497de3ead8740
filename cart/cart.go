// Package cart implements the stock-reserving shopping cart. Every mutating
// operation moves units between the catalog's stock counter and the cart's
// lines atomically, so catalog stock plus outstanding cart reservations for
// a medicine always equals that medicine's unreserved total.
package cart

import (
	"github.com/openrx/pharmacy-api/catalog"
)

// LowStockThreshold is the stock count below which (but above zero) a
// low-stock notification is emitted.
const LowStockThreshold = 20

// Line is one cart entry. Medicine is a snapshot taken at the last mutation,
// so its Stock field reflects the post-reservation catalog state.
type Line struct {
	Medicine catalog.Medicine `json:"medicine"`
	Quantity int              `json:"quantity"`
}

// Catalog is the slice of the catalog store the engine needs. Reserve and
// Release must be atomic and must never let stock go negative.
type Catalog interface {
	Get(id string) (catalog.Medicine, bool)
	Reserve(id string, n int) (int, error)
	Release(id string, n int) (int, error)
}

// Repository persists cart snapshots between sessions. The storage format is
// the repository's concern; the engine only hands over its lines.
type Repository interface {
	Load(cartID string) ([]Line, bool, error)
	Save(cartID string, lines []Line) error
}
