// Package notify defines the typed events the storefront core emits for a
// presentation layer to render. The core never formats user-facing strings;
// it hands these events to whatever Notifier the caller wires in.
package notify

import (
	"sync"

	"github.com/openrx/pharmacy-api/logging"
)

// Event is implemented by every notification the core emits.
type Event interface {
	Kind() string
}

// LowStock signals that a medicine's stock dropped below the low-stock
// threshold but is not yet exhausted.
type LowStock struct {
	MedicineID string
	Remaining  int
}

func (LowStock) Kind() string { return "low_stock" }

// OutOfStock signals that an add was attempted for a medicine with no
// available units.
type OutOfStock struct {
	MedicineID string
}

func (OutOfStock) Kind() string { return "out_of_stock" }

// ItemAdded signals that a unit was reserved into the cart.
type ItemAdded struct {
	MedicineID string
}

func (ItemAdded) Kind() string { return "item_added" }

// ItemRemoved signals that a cart line was removed and its units returned.
type ItemRemoved struct {
	MedicineID string
}

func (ItemRemoved) Kind() string { return "item_removed" }

// QuantityChanged signals a cart line quantity change. Delta is positive for
// additional reservations and negative for returned units.
type QuantityChanged struct {
	MedicineID string
	Delta      int
}

func (QuantityChanged) Kind() string { return "quantity_changed" }

// Notifier receives events emitted by the core. Implementations must not
// block; events are advisory and never affect the outcome of an operation.
type Notifier interface {
	Notify(Event)
}

// LogNotifier writes events to the structured log. It is the default sink
// when no presentation layer is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(e Event) {
	switch ev := e.(type) {
	case LowStock:
		logging.Warn("Medicine running low", "event", ev.Kind(), "medicine_id", ev.MedicineID, "remaining", ev.Remaining)
	case OutOfStock:
		logging.Warn("Medicine out of stock", "event", ev.Kind(), "medicine_id", ev.MedicineID)
	case ItemAdded:
		logging.Debug("Item added to cart", "event", ev.Kind(), "medicine_id", ev.MedicineID)
	case ItemRemoved:
		logging.Debug("Item removed from cart", "event", ev.Kind(), "medicine_id", ev.MedicineID)
	case QuantityChanged:
		logging.Debug("Cart quantity changed", "event", ev.Kind(), "medicine_id", ev.MedicineID, "delta", ev.Delta)
	default:
		logging.Debug("Cart event", "event", e.Kind())
	}
}

// Recorder collects events for inspection, mainly in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
