package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/catalog"
	"github.com/openrx/pharmacy-api/checkout"
	"github.com/openrx/pharmacy-api/config"
	"github.com/openrx/pharmacy-api/handlers"
	"github.com/openrx/pharmacy-api/logging"
	"github.com/openrx/pharmacy-api/server"
	"github.com/openrx/pharmacy-api/session"
)

func newTestServer(t *testing.T) (*server.Server, *catalog.Store) {
	t.Helper()
	logging.InitLogger("")

	store := catalog.NewStore(catalog.DefaultMedicines())
	deps := &handlers.Deps{
		Catalog:  store,
		Carts:    cart.NewRegistry(store, nil, nil),
		Sessions: session.NewManager("integration-secret"),
	}
	cfg := &config.Config{
		Port:           "8000",
		Address:        "127.0.0.1",
		Env:            "dev",
		LogLevel:       "info",
		MaxRequestBody: 1048576,
		MaxHeaderSize:  1048576,
	}
	return server.NewServer(cfg, deps), store
}

// browser drives the full middleware stack while holding the session cookie.
type browser struct {
	t      *testing.T
	srv    *server.Server
	cookie *http.Cookie
}

func (b *browser) do(method, path, body string) *httptest.ResponseRecorder {
	b.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	rec := httptest.NewRecorder()
	b.srv.Router().ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			b.cookie = cookie
		}
	}
	return rec
}

func TestIntegrationStorefrontFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, store := newTestServer(t)
	b := &browser{t: t, srv: srv}
	originalStock := store.TotalStock()

	// Health reports a sellable catalog.
	rec := b.do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Browse the catalog.
	rec = b.do(http.MethodGet, "/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /catalog: expected 200, got %d", rec.Code)
	}
	var medicines []catalog.Medicine
	if err := json.Unmarshal(rec.Body.Bytes(), &medicines); err != nil {
		t.Fatalf("Failed to decode catalog: %v", err)
	}
	if len(medicines) == 0 {
		t.Fatal("Expected a non-empty catalog")
	}

	// Upload a prescription and reserve the resolved medicines.
	rec = b.do(http.MethodPost, "/prescriptions",
		`{"source": "text", "addToCart": true, "content": "Amoxicillin 500mg - Take 2 tablets daily"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /prescriptions: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var rx struct {
		UnitsAdded int `json:"unitsAdded"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rx); err != nil {
		t.Fatalf("Failed to decode prescription response: %v", err)
	}
	if rx.UnitsAdded != 2 {
		t.Errorf("Expected 2 units added from prescription, got %d", rx.UnitsAdded)
	}

	// Adjust the quantity through the cart endpoint.
	var view struct {
		Lines []cart.Line    `json:"lines"`
		Quote checkout.Quote `json:"quote"`
	}
	rec = b.do(http.MethodGet, "/cart", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("Failed to decode cart: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("Expected 1 cart line, got %d", len(view.Lines))
	}
	medicineID := view.Lines[0].Medicine.ID

	rec = b.do(http.MethodPut, "/cart/items/"+medicineID, `{"quantity": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /cart/items: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Reserved units are subtracted from the catalog but conserved overall.
	inCart := 5
	if store.TotalStock()+inCart != originalStock {
		t.Errorf("Conservation violated: stock %d + cart %d != %d",
			store.TotalStock(), inCart, originalStock)
	}

	// Check out; sold stock stays subtracted and the cart empties.
	rec = b.do(http.MethodPost, "/checkout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /checkout: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var order checkout.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("Failed to decode order: %v", err)
	}
	if !strings.HasPrefix(order.ID, "ORD-") {
		t.Errorf("Expected order id, got %q", order.ID)
	}
	if order.Quote.ItemCount != 5 {
		t.Errorf("Expected 5 items in order, got %d", order.Quote.ItemCount)
	}

	if store.TotalStock() != originalStock-5 {
		t.Errorf("Expected %d total stock after sale, got %d", originalStock-5, store.TotalStock())
	}

	rec = b.do(http.MethodGet, "/cart", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("Failed to decode cart: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Errorf("Expected empty cart after checkout, got %v", view.Lines)
	}
}

func TestIntegrationRequestBodyLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, _ := newTestServer(t)
	b := &browser{t: t, srv: srv}

	huge := strings.Repeat("x", 2*1048576)
	req := httptest.NewRequest(http.MethodPost, "/prescriptions", strings.NewReader(huge))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(huge)))

	rec := httptest.NewRecorder()
	b.srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for oversized body, got %d", rec.Code)
	}
}

func TestIntegrationMetricsEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, _ := newTestServer(t)
	b := &browser{t: t, srv: srv}

	rec := b.do(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_request_total") {
		t.Error("Expected request metrics in exposition output")
	}
}
