package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/openrx/pharmacy-api/checkout"
	"github.com/openrx/pharmacy-api/logging"
)

// client keeps the session cookie across requests, like a browser would.
type client struct {
	t      *testing.T
	router chi.Router
	cookie *http.Cookie
}

func newClient(t *testing.T, router chi.Router) *client {
	return &client{t: t, router: router}
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "pharmacy_session" {
			c.cookie = cookie
		}
	}
	return rec
}

func TestGetCartStartsEmpty(t *testing.T) {
	logging.InitLogger("")
	c := newClient(t, testRouter(testDeps()))

	rec := c.do(http.MethodGet, "/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var view cartView
	decodeBody(t, rec, &view)
	if view.CartID == "" {
		t.Error("Expected a cart id")
	}
	if len(view.Lines) != 0 {
		t.Errorf("Expected empty cart, got %v", view.Lines)
	}
}

func TestAddCartItemFlow(t *testing.T) {
	logging.InitLogger("")
	deps := testDeps()
	c := newClient(t, testRouter(deps))

	rec := c.do(http.MethodPost, "/cart/items/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view cartView
	decodeBody(t, rec, &view)
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 1 {
		t.Fatalf("Expected one line with quantity 1, got %v", view.Lines)
	}
	// Snapshot reflects post-reservation stock.
	if view.Lines[0].Medicine.Stock != 149 {
		t.Errorf("Expected snapshot stock 149, got %d", view.Lines[0].Medicine.Stock)
	}

	// Same session, cart persists between requests.
	rec = c.do(http.MethodGet, "/cart", "")
	decodeBody(t, rec, &view)
	if len(view.Lines) != 1 {
		t.Errorf("Expected cart to persist across requests, got %v", view.Lines)
	}

	med, _ := deps.Catalog.Get("1")
	if med.Stock != 149 {
		t.Errorf("Expected catalog stock 149, got %d", med.Stock)
	}
}

func TestAddCartItemUnknownMedicine(t *testing.T) {
	logging.InitLogger("")
	c := newClient(t, testRouter(testDeps()))

	rec := c.do(http.MethodPost, "/cart/items/999", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestAddCartItemOutOfStock(t *testing.T) {
	logging.InitLogger("")
	deps := testDeps()
	c := newClient(t, testRouter(deps))

	// Medicine 4 has a single unit.
	if rec := c.do(http.MethodPost, "/cart/items/4", ""); rec.Code != http.StatusOK {
		t.Fatalf("First add failed: %d", rec.Code)
	}
	rec := c.do(http.MethodPost, "/cart/items/4", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 when stock is exhausted, got %d", rec.Code)
	}
}

func TestUpdateCartItem(t *testing.T) {
	logging.InitLogger("")
	deps := testDeps()
	c := newClient(t, testRouter(deps))

	c.do(http.MethodPost, "/cart/items/1", "")

	rec := c.do(http.MethodPut, "/cart/items/1", `{"quantity": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view cartView
	decodeBody(t, rec, &view)
	if view.Lines[0].Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", view.Lines[0].Quantity)
	}

	med, _ := deps.Catalog.Get("1")
	if med.Stock != 145 {
		t.Errorf("Expected catalog stock 145, got %d", med.Stock)
	}

	// Quantity zero removes the line.
	rec = c.do(http.MethodPut, "/cart/items/1", `{"quantity": 0}`)
	decodeBody(t, rec, &view)
	if len(view.Lines) != 0 {
		t.Errorf("Expected empty cart after quantity 0, got %v", view.Lines)
	}
}

func TestUpdateCartItemValidation(t *testing.T) {
	logging.InitLogger("")
	c := newClient(t, testRouter(testDeps()))

	c.do(http.MethodPost, "/cart/items/1", "")

	for _, body := range []string{"", "{}", `{"quantity": -1}`, "not json"} {
		rec := c.do(http.MethodPut, "/cart/items/1", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestUpdateCartItemInsufficientStock(t *testing.T) {
	logging.InitLogger("")
	c := newClient(t, testRouter(testDeps()))

	c.do(http.MethodPost, "/cart/items/4", "")

	rec := c.do(http.MethodPut, "/cart/items/4", `{"quantity": 10}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", rec.Code)
	}

	var body struct {
		Error     string `json:"error"`
		Available int    `json:"available"`
	}
	decodeBody(t, rec, &body)
	if body.Available != 0 {
		t.Errorf("Expected 0 available, got %d", body.Available)
	}
}

func TestRemoveCartItem(t *testing.T) {
	logging.InitLogger("")
	deps := testDeps()
	c := newClient(t, testRouter(deps))

	c.do(http.MethodPost, "/cart/items/1", "")

	rec := c.do(http.MethodDelete, "/cart/items/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var view cartView
	decodeBody(t, rec, &view)
	if len(view.Lines) != 0 {
		t.Errorf("Expected empty cart, got %v", view.Lines)
	}

	med, _ := deps.Catalog.Get("1")
	if med.Stock != 150 {
		t.Errorf("Expected stock restored to 150, got %d", med.Stock)
	}

	// Removing a medicine that is not in the cart still succeeds.
	if rec := c.do(http.MethodDelete, "/cart/items/1", ""); rec.Code != http.StatusOK {
		t.Errorf("Expected idempotent remove, got %d", rec.Code)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	logging.InitLogger("")
	c := newClient(t, testRouter(testDeps()))

	rec := c.do(http.MethodPost, "/checkout", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty cart, got %d", rec.Code)
	}
}

func TestCheckoutConfirmsOrder(t *testing.T) {
	logging.InitLogger("")
	deps := testDeps()
	c := newClient(t, testRouter(deps))

	c.do(http.MethodPost, "/cart/items/1", "")
	c.do(http.MethodPut, "/cart/items/1", `{"quantity": 3}`)

	rec := c.do(http.MethodPost, "/checkout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var order checkout.Order
	decodeBody(t, rec, &order)
	if !strings.HasPrefix(order.ID, "ORD-") {
		t.Errorf("Expected order id, got %q", order.ID)
	}
	if order.Quote.ItemCount != 3 {
		t.Errorf("Expected 3 items, got %d", order.Quote.ItemCount)
	}

	// Cart is empty, sold stock stays subtracted.
	var view cartView
	rec = c.do(http.MethodGet, "/cart", "")
	decodeBody(t, rec, &view)
	if len(view.Lines) != 0 {
		t.Errorf("Expected empty cart after checkout, got %v", view.Lines)
	}
	med, _ := deps.Catalog.Get("1")
	if med.Stock != 147 {
		t.Errorf("Expected stock 147 after sale, got %d", med.Stock)
	}
}
