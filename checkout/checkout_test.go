package checkout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/catalog"
	"github.com/openrx/pharmacy-api/logging"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuoteFor(t *testing.T) {
	lines := []cart.Line{
		{Medicine: catalog.Medicine{ID: "1", Price: 12.99}, Quantity: 2},
		{Medicine: catalog.Medicine{ID: "2", Price: 8.49}, Quantity: 1},
	}

	q := QuoteFor(lines)

	wantSubtotal := 12.99*2 + 8.49
	if !almostEqual(q.Subtotal, wantSubtotal) {
		t.Errorf("Expected subtotal %f, got %f", wantSubtotal, q.Subtotal)
	}
	if !almostEqual(q.Tax, wantSubtotal*TaxRate) {
		t.Errorf("Expected tax %f, got %f", wantSubtotal*TaxRate, q.Tax)
	}
	if q.DeliveryFee != 0 {
		t.Errorf("Delivery is free, got %f", q.DeliveryFee)
	}
	if !almostEqual(q.Total, wantSubtotal*(1+TaxRate)) {
		t.Errorf("Expected total %f, got %f", wantSubtotal*(1+TaxRate), q.Total)
	}
	if q.ItemCount != 3 {
		t.Errorf("Expected 3 items, got %d", q.ItemCount)
	}
}

func TestQuoteForEmptyCart(t *testing.T) {
	q := QuoteFor(nil)
	if q.Subtotal != 0 || q.Tax != 0 || q.Total != 0 || q.ItemCount != 0 {
		t.Errorf("Expected zero quote for empty cart, got %+v", q)
	}
}

func TestConfirmEmptyCart(t *testing.T) {
	logging.InitLogger("")

	store := catalog.NewStore([]catalog.Medicine{{ID: "1", Name: "Med", Price: 10, Stock: 5}})
	engine := cart.NewEngine("cart-1", store, nil, nil)

	_, err := Confirm(engine)
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("Expected ErrEmptyCart, got %v", err)
	}
}

func TestConfirmConsumesReservations(t *testing.T) {
	logging.InitLogger("")

	store := catalog.NewStore([]catalog.Medicine{{ID: "1", Name: "Med", Price: 10, Stock: 5}})
	engine := cart.NewEngine("cart-1", store, nil, nil)

	if err := engine.AddOne("1"); err != nil {
		t.Fatalf("AddOne failed: %v", err)
	}
	if err := engine.SetQuantity("1", 3); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}

	order, err := Confirm(engine)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	if !strings.HasPrefix(order.ID, "ORD-") {
		t.Errorf("Expected ORD- prefix, got %s", order.ID)
	}
	if order.CartID != "cart-1" {
		t.Errorf("Expected cart id cart-1, got %s", order.CartID)
	}
	if len(order.LineIDs) != 1 || order.LineIDs[0] != "1" {
		t.Errorf("Expected line ids [1], got %v", order.LineIDs)
	}
	if !almostEqual(order.Quote.Total, 30*1.08) {
		t.Errorf("Expected total %f, got %f", 30*1.08, order.Quote.Total)
	}
	if order.PaidAt.IsZero() {
		t.Error("Expected PaidAt to be set")
	}

	// Sold units stay subtracted from the catalog.
	if !engine.IsEmpty() {
		t.Error("Expected empty cart after confirmation")
	}
	med, _ := store.Get("1")
	if med.Stock != 2 {
		t.Errorf("Expected stock 2 after sale, got %d", med.Stock)
	}
}

func TestNewOrderIDFormat(t *testing.T) {
	id := NewOrderID()
	if !strings.HasPrefix(id, "ORD-") {
		t.Fatalf("Expected ORD- prefix, got %s", id)
	}
	digits := strings.TrimPrefix(id, "ORD-")
	if len(digits) != 6 {
		t.Errorf("Expected 6 digits, got %q", digits)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			t.Errorf("Non-digit in order id: %s", id)
		}
	}
}
