package cart

import (
	"errors"
	"fmt"
)

// ErrOutOfStock is returned by AddOne when the medicine has no available
// units at the time of the add.
var ErrOutOfStock = errors.New("medicine is out of stock")

// ErrStockLimitReached is returned by AddOne when the existing cart line
// already holds every unit that was ever available for the medicine.
var ErrStockLimitReached = errors.New("stock limit reached")

// InsufficientStockError is returned by SetQuantity when a quantity increase
// exceeds the available units. It carries the actually-available count so the
// caller can report it.
type InsufficientStockError struct {
	MedicineID string
	Available  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d units available", e.MedicineID, e.Available)
}
