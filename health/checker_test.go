package health

import (
	"net/http"
	"testing"

	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/catalog"
)

func TestCheckHealthy(t *testing.T) {
	store := catalog.NewStore([]catalog.Medicine{{ID: "1", Name: "Med", Stock: 10}})
	checker := NewChecker(store, cart.NewRegistry(store, nil, nil), nil)

	status, data, httpStatus := checker.Check()

	if status != "healthy" || httpStatus != http.StatusOK {
		t.Errorf("Expected healthy/200, got %s/%d", status, httpStatus)
	}
	if data["medicines"] != 1 {
		t.Errorf("Expected 1 medicine, got %v", data["medicines"])
	}
	if data["total_stock"] != 10 {
		t.Errorf("Expected total stock 10, got %v", data["total_stock"])
	}
	if data["storage_ok"] != true {
		t.Errorf("Nil storage should count as ok, got %v", data["storage_ok"])
	}
}

func TestCheckEmptyCatalogIsUnhealthy(t *testing.T) {
	store := catalog.NewStore(nil)
	checker := NewChecker(store, cart.NewRegistry(store, nil, nil), nil)

	status, _, httpStatus := checker.Check()

	if status != "unhealthy" || httpStatus != http.StatusServiceUnavailable {
		t.Errorf("Expected unhealthy/503, got %s/%d", status, httpStatus)
	}
}

func TestCheckCountsActiveCarts(t *testing.T) {
	store := catalog.NewStore([]catalog.Medicine{{ID: "1", Name: "Med", Stock: 10}})
	registry := cart.NewRegistry(store, nil, nil)
	checker := NewChecker(store, registry, nil)

	registry.ForCart("cart-1")
	registry.ForCart("cart-2")

	_, data, _ := checker.Check()
	if data["active_carts"] != 2 {
		t.Errorf("Expected 2 active carts, got %v", data["active_carts"])
	}
}

func TestUptime(t *testing.T) {
	store := catalog.NewStore(nil)
	checker := NewChecker(store, cart.NewRegistry(store, nil, nil), nil)

	if checker.Uptime() < 0 {
		t.Error("Uptime cannot be negative")
	}
}
