package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/openrx/pharmacy-api/catalog"
	"github.com/openrx/pharmacy-api/logging"
	"github.com/openrx/pharmacy-api/metrics"
	"github.com/openrx/pharmacy-api/notify"
	"github.com/openrx/pharmacy-api/prescription"
)

// Engine is the per-session reservation engine. Operations are serialized by
// an internal mutex; stock mutations additionally go through the catalog's
// own atomic Reserve/Release primitives, so the conservation invariant holds
// even with concurrent sessions touching the same medicine.
type Engine struct {
	mu       sync.Mutex
	cartID   string
	catalog  Catalog
	repo     Repository
	notifier notify.Notifier
	lines    []Line
	index    map[string]int // medicine id -> position in lines
}

// NewEngine creates an engine for the given cart id. When a repository is
// provided, a previously saved cart is restored and its reservations are
// re-applied against the catalog, clamping each line to what is still
// available.
func NewEngine(cartID string, cat Catalog, repo Repository, notifier notify.Notifier) *Engine {
	e := &Engine{
		cartID:   cartID,
		catalog:  cat,
		repo:     repo,
		notifier: notifier,
		index:    make(map[string]int),
	}

	if repo != nil {
		e.restore()
	}

	return e
}

// restore reloads persisted lines and re-reserves their units. A line whose
// medicine no longer exists or has less stock than the saved quantity is
// clamped to what can actually be reserved.
func (e *Engine) restore() {
	saved, ok, err := e.repo.Load(e.cartID)
	if err != nil {
		logging.Warn("Failed to load saved cart", "cart_id", e.cartID, "error", err)
		return
	}
	if !ok {
		return
	}

	for _, line := range saved {
		med, exists := e.catalog.Get(line.Medicine.ID)
		if !exists || line.Quantity <= 0 {
			continue
		}

		quantity := line.Quantity
		if med.Stock < quantity {
			quantity = med.Stock
		}
		if quantity == 0 {
			continue
		}

		remaining, err := e.catalog.Reserve(med.ID, quantity)
		if err != nil {
			continue
		}

		med.Stock = remaining
		e.index[med.ID] = len(e.lines)
		e.lines = append(e.lines, Line{Medicine: med, Quantity: quantity})
	}
}

// AddOne reserves a single unit of the medicine into the cart.
func (e *Engine) AddOne(medicineID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.addOne(medicineID); err != nil {
		return err
	}
	e.save()
	return nil
}

// addOne is the unlocked single-unit add shared with BulkAddFromResolved.
func (e *Engine) addOne(medicineID string) error {
	med, ok := e.catalog.Get(medicineID)
	if !ok {
		return fmt.Errorf("add %s: %w", medicineID, catalog.ErrNotFound)
	}

	pos, hasLine := e.index[medicineID]

	// An existing line whose quantity already matches or exceeds what is
	// left in the catalog must not grow further; checked before any stock
	// mutation.
	if hasLine && e.lines[pos].Quantity >= med.Stock {
		return fmt.Errorf("%s: %w", medicineID, ErrStockLimitReached)
	}

	if med.Stock <= 0 {
		e.emit(notify.OutOfStock{MedicineID: medicineID})
		return fmt.Errorf("%s: %w", medicineID, ErrOutOfStock)
	}

	remaining, err := e.catalog.Reserve(medicineID, 1)
	if err != nil {
		// Lost a race with another session for the last unit.
		e.emit(notify.OutOfStock{MedicineID: medicineID})
		return fmt.Errorf("%s: %w", medicineID, ErrOutOfStock)
	}
	metrics.UnitsReserved.Inc()

	med.Stock = remaining
	if hasLine {
		e.lines[pos].Quantity++
		e.lines[pos].Medicine = med
	} else {
		e.index[medicineID] = len(e.lines)
		e.lines = append(e.lines, Line{Medicine: med, Quantity: 1})
	}

	e.emit(notify.ItemAdded{MedicineID: medicineID})
	e.maybeLowStock(medicineID, remaining)
	return nil
}

// SetQuantity sets a cart line to the given quantity, reserving or returning
// the difference. Quantity zero is equivalent to Remove. Setting a quantity
// for a medicine that has no cart line is a no-op.
func (e *Engine) SetQuantity(medicineID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity cannot be negative: %d", quantity)
	}
	if quantity == 0 {
		return e.Remove(medicineID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	pos, hasLine := e.index[medicineID]
	if !hasLine {
		return nil
	}

	diff := quantity - e.lines[pos].Quantity
	med, ok := e.catalog.Get(medicineID)
	if !ok {
		return fmt.Errorf("set quantity for %s: %w", medicineID, catalog.ErrNotFound)
	}

	switch {
	case diff > 0:
		remaining, err := e.catalog.Reserve(medicineID, diff)
		if err != nil {
			return &InsufficientStockError{MedicineID: medicineID, Available: med.Stock}
		}
		metrics.UnitsReserved.Add(float64(diff))
		med.Stock = remaining
	case diff < 0:
		remaining, err := e.catalog.Release(medicineID, -diff)
		if err != nil {
			return fmt.Errorf("return stock for %s: %w", medicineID, err)
		}
		metrics.UnitsReturned.Add(float64(-diff))
		med.Stock = remaining
	}

	e.lines[pos].Quantity = quantity
	e.lines[pos].Medicine = med

	if diff != 0 {
		e.emit(notify.QuantityChanged{MedicineID: medicineID, Delta: diff})
		e.maybeLowStock(medicineID, med.Stock)
	}

	e.save()
	return nil
}

// Remove deletes a cart line and returns all its reserved units. Removing a
// medicine that is not in the cart is a no-op.
func (e *Engine) Remove(medicineID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, hasLine := e.index[medicineID]
	if !hasLine {
		return nil
	}

	quantity := e.lines[pos].Quantity
	remaining, err := e.catalog.Release(medicineID, quantity)
	if err != nil {
		return fmt.Errorf("return stock for %s: %w", medicineID, err)
	}
	metrics.UnitsReturned.Add(float64(quantity))

	e.deleteLine(pos)
	e.emit(notify.ItemRemoved{MedicineID: medicineID})
	e.maybeLowStock(medicineID, remaining)
	e.save()
	return nil
}

// BulkResult reports the outcome of a prescription bulk add.
type BulkResult struct {
	UnitsAdded  int      // units actually reserved
	Unavailable []string // raw names of candidates that did not resolve
}

// BulkAddFromResolved adds each resolved candidate one unit at a time, up to
// its prescribed quantity. A medicine whose stock runs out partway through
// keeps whatever was reserved so far; the remaining units are silently
// skipped. Unresolved candidates are reported back, not treated as errors.
func (e *Engine) BulkAddFromResolved(candidates []prescription.Candidate) BulkResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result BulkResult
	for _, c := range candidates {
		if c.Resolved == nil {
			result.Unavailable = append(result.Unavailable, c.RawName)
			continue
		}

		for i := 0; i < c.Quantity; i++ {
			if err := e.addOne(c.Resolved.ID); err != nil {
				if errors.Is(err, ErrOutOfStock) || errors.Is(err, ErrStockLimitReached) {
					break
				}
				break
			}
			result.UnitsAdded++
		}
	}

	if result.UnitsAdded > 0 {
		e.save()
	}
	return result
}

// ClearForSale empties the cart without returning stock to the catalog; the
// reservations become a completed sale.
func (e *Engine) ClearForSale() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil
	e.index = make(map[string]int)
	e.save()
}

// Lines returns a copy of the cart lines in insertion order.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Quantity returns the cart quantity for a medicine, zero when absent.
func (e *Engine) Quantity(medicineID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if pos, ok := e.index[medicineID]; ok {
		return e.lines[pos].Quantity
	}
	return 0
}

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines) == 0
}

// CartID returns the engine's cart identifier.
func (e *Engine) CartID() string {
	return e.cartID
}

func (e *Engine) deleteLine(pos int) {
	medicineID := e.lines[pos].Medicine.ID
	e.lines = append(e.lines[:pos], e.lines[pos+1:]...)
	delete(e.index, medicineID)
	for i := pos; i < len(e.lines); i++ {
		e.index[e.lines[i].Medicine.ID] = i
	}
}

func (e *Engine) emit(event notify.Event) {
	if e.notifier != nil {
		e.notifier.Notify(event)
	}
}

// maybeLowStock emits a low-stock notification when remaining stock lands
// strictly between zero and the threshold. Stock reaching exactly zero is an
// out-of-stock condition, not a low-stock one.
func (e *Engine) maybeLowStock(medicineID string, remaining int) {
	if remaining > 0 && remaining < LowStockThreshold {
		metrics.LowStockEvents.Inc()
		e.emit(notify.LowStock{MedicineID: medicineID, Remaining: remaining})
	}
}

// save persists the current lines. Persistence is a collaborator concern; a
// failed save is logged but does not undo the completed operation.
func (e *Engine) save() {
	if e.repo == nil {
		return
	}
	if err := e.repo.Save(e.cartID, e.lines); err != nil {
		logging.Warn("Failed to save cart", "cart_id", e.cartID, "error", err)
	}
}
