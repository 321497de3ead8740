// Package health evaluates the service's ability to sell: a catalog with
// entries and reachable cart storage. It feeds the /health endpoint.
package health

import (
	"net/http"
	"time"

	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/interfaces"
	"github.com/openrx/pharmacy-api/persistence"
)

// Checker computes health status from injected dependencies.
type Checker struct {
	catalog interfaces.CatalogStore
	carts   *cart.Registry
	storage *persistence.CartRepository
	started time.Time
}

// NewChecker creates a health checker. The storage repository may be nil
// when the service runs without persistence.
func NewChecker(catalog interfaces.CatalogStore, carts *cart.Registry, storage *persistence.CartRepository) *Checker {
	return &Checker{
		catalog: catalog,
		carts:   carts,
		storage: storage,
		started: time.Now(),
	}
}

// Check returns the health status, the data section of the health payload,
// and the HTTP status code to respond with.
//
// An empty catalog means nothing can be sold and reports unhealthy.
// Unreachable cart storage degrades the service but requests still work
// against the in-memory state.
func (c *Checker) Check() (status string, data map[string]any, httpStatus int) {
	status = "healthy"
	httpStatus = http.StatusOK

	storageOK := true
	if c.storage != nil {
		if err := c.storage.Ping(); err != nil {
			storageOK = false
			status = "degraded"
		}
	}

	if c.catalog.Len() == 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	data = map[string]any{
		"api_version":  "1.0",
		"medicines":    c.catalog.Len(),
		"total_stock":  c.catalog.TotalStock(),
		"active_carts": c.carts.Len(),
		"storage_ok":   storageOK,
	}
	return status, data, httpStatus
}

// Uptime reports how long the checker's service has been running.
func (c *Checker) Uptime() time.Duration {
	return time.Since(c.started)
}
