package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/catalog"
	"github.com/openrx/pharmacy-api/checkout"
)

// cartView is the cart payload returned by the cart endpoints.
type cartView struct {
	CartID string         `json:"cartId"`
	Lines  []cart.Line    `json:"lines"`
	Quote  checkout.Quote `json:"quote"`
}

func viewOf(engine *cart.Engine) cartView {
	lines := engine.Lines()
	return cartView{
		CartID: engine.CartID(),
		Lines:  lines,
		Quote:  checkout.QuoteFor(lines),
	}
}

// engineFor resolves the session cart engine for the request.
func engineFor(deps *Deps, w http.ResponseWriter, r *http.Request) *cart.Engine {
	cartID := deps.Sessions.CartIDFromRequest(w, r)
	return deps.Carts.ForCart(cartID)
}

// GetCart returns the session's cart with its priced quote.
func GetCart(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, viewOf(engineFor(deps, w, r)))
	}
}

// AddCartItem reserves one unit of a medicine into the session cart.
func AddCartItem(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine := engineFor(deps, w, r)
		medicineID := chi.URLParam(r, "id")

		if err := engine.AddOne(medicineID); err != nil {
			respondCartError(w, err)
			return
		}

		RespondWithJSON(w, http.StatusOK, viewOf(engine))
	}
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// UpdateCartItem sets a cart line to an absolute quantity. Zero removes the
// line.
func UpdateCartItem(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine := engineFor(deps, w, r)
		medicineID := chi.URLParam(r, "id")

		var req updateQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
			RespondWithError(w, http.StatusBadRequest, "Request body must contain a quantity")
			return
		}
		if *req.Quantity < 0 {
			RespondWithError(w, http.StatusBadRequest, "Quantity cannot be negative")
			return
		}

		if err := engine.SetQuantity(medicineID, *req.Quantity); err != nil {
			respondCartError(w, err)
			return
		}

		RespondWithJSON(w, http.StatusOK, viewOf(engine))
	}
}

// RemoveCartItem deletes a cart line and returns its reserved units.
// Removing a medicine that is not in the cart succeeds with no effect.
func RemoveCartItem(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine := engineFor(deps, w, r)
		medicineID := chi.URLParam(r, "id")

		if err := engine.Remove(medicineID); err != nil {
			respondCartError(w, err)
			return
		}

		RespondWithJSON(w, http.StatusOK, viewOf(engine))
	}
}

// Checkout confirms payment for the session cart: totals are computed, the
// reservations become a sale, and the cart is emptied.
func Checkout(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine := engineFor(deps, w, r)

		order, err := checkout.Confirm(engine)
		if err != nil {
			if errors.Is(err, checkout.ErrEmptyCart) {
				RespondWithError(w, http.StatusBadRequest, "Your cart is empty")
				return
			}
			RespondWithError(w, http.StatusInternalServerError, "Checkout failed")
			return
		}

		RespondWithJSON(w, http.StatusOK, order)
	}
}

// respondCartError maps reservation engine errors to HTTP responses. All
// three stock conditions are expected, recoverable outcomes; the cart is
// unchanged when they occur.
func respondCartError(w http.ResponseWriter, err error) {
	var insufficient *cart.InsufficientStockError

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "Medicine not found")
	case errors.Is(err, cart.ErrOutOfStock):
		RespondWithError(w, http.StatusConflict, "Medicine is out of stock")
	case errors.Is(err, cart.ErrStockLimitReached):
		RespondWithError(w, http.StatusConflict, "Stock limit reached for this medicine")
	case errors.As(err, &insufficient):
		RespondWithJSON(w, http.StatusConflict, map[string]interface{}{
			"error":     "Not enough stock",
			"available": insufficient.Available,
		})
	default:
		RespondWithError(w, http.StatusInternalServerError, "Cart operation failed")
	}
}
