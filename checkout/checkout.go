// Package checkout computes order totals and finalizes sales. Confirming a
// payment consumes the cart's reservations permanently; cancelling before
// confirmation leaves the cart and its reservations untouched.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/logging"
	"github.com/openrx/pharmacy-api/metrics"
)

// TaxRate is applied to the subtotal. Delivery is free.
const TaxRate = 0.08

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// Quote is the priced breakdown of a cart.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
	ItemCount   int     `json:"itemCount"`
}

// Order is a confirmed sale.
type Order struct {
	ID      string    `json:"id"`
	Quote   Quote     `json:"quote"`
	PaidAt  time.Time `json:"paidAt"`
	CartID  string    `json:"cartId"`
	LineIDs []string  `json:"lineIds"`
}

// QuoteFor prices the given cart lines.
func QuoteFor(lines []cart.Line) Quote {
	var q Quote
	for _, line := range lines {
		q.Subtotal += line.Medicine.Price * float64(line.Quantity)
		q.ItemCount += line.Quantity
	}
	q.Tax = q.Subtotal * TaxRate
	q.Total = q.Subtotal + q.Tax + q.DeliveryFee
	return q
}

// Confirm finalizes a paid order: the cart is cleared without returning its
// reserved stock, and a generated order identifier is returned.
func Confirm(engine *cart.Engine) (Order, error) {
	lines := engine.Lines()
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		ID:     NewOrderID(),
		Quote:  QuoteFor(lines),
		PaidAt: time.Now(),
		CartID: engine.CartID(),
	}
	for _, line := range lines {
		order.LineIDs = append(order.LineIDs, line.Medicine.ID)
	}

	engine.ClearForSale()
	metrics.OrdersConfirmed.Inc()

	logging.Info("Order confirmed",
		"order_id", order.ID,
		"cart_id", order.CartID,
		"items", order.Quote.ItemCount,
		"total", order.Quote.Total,
	)

	return order, nil
}

// NewOrderID generates an order identifier from the trailing digits of the
// current unix-milli timestamp.
func NewOrderID() string {
	ms := fmt.Sprintf("%d", time.Now().UnixMilli())
	return "ORD-" + ms[len(ms)-6:]
}
