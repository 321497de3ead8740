package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned when a medicine id is not in the catalog.
var ErrNotFound = errors.New("medicine not found")

// Store holds the authoritative medicine list and live stock counters.
// All stock read-check-write cycles go through the internal mutex so that
// concurrent carts never observe a torn update and stock never goes negative.
type Store struct {
	mu        sync.RWMutex
	medicines []Medicine
	index     map[string]int // id -> position in medicines
}

// NewStore builds a store from the given medicines, preserving their order
// as the catalog iteration order. Entries with duplicate ids are dropped.
func NewStore(medicines []Medicine) *Store {
	s := &Store{
		medicines: make([]Medicine, 0, len(medicines)),
		index:     make(map[string]int, len(medicines)),
	}

	for _, m := range medicines {
		if _, exists := s.index[m.ID]; exists {
			continue
		}
		s.index[m.ID] = len(s.medicines)
		s.medicines = append(s.medicines, m)
	}

	return s
}

// Get returns a copy of the medicine with the given id.
func (s *Store) Get(id string) (Medicine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return Medicine{}, false
	}
	return s.medicines[pos], true
}

// List returns a copy of all medicines in catalog iteration order.
func (s *Store) List() []Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Medicine, len(s.medicines))
	copy(out, s.medicines)
	return out
}

// Len returns the number of catalog entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.medicines)
}

// SetStock replaces the stock counter of a medicine. Negative values are
// rejected before any mutation happens.
func (s *Store) SetStock(id string, stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock for %s cannot be negative: %d", id, stock)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return fmt.Errorf("set stock for %s: %w", id, ErrNotFound)
	}
	s.medicines[pos].Stock = stock
	return nil
}

// Reserve subtracts n units from the medicine's stock and returns the
// remaining count. It fails without mutating when fewer than n units are
// available, so stock can never go negative.
func (s *Store) Reserve(id string, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("reserve count must be positive, got %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return 0, fmt.Errorf("reserve %s: %w", id, ErrNotFound)
	}
	if s.medicines[pos].Stock < n {
		return s.medicines[pos].Stock, fmt.Errorf("reserve %d of %s: only %d available", n, id, s.medicines[pos].Stock)
	}
	s.medicines[pos].Stock -= n
	return s.medicines[pos].Stock, nil
}

// Release returns n previously reserved units to the medicine's stock and
// returns the new count.
func (s *Store) Release(id string, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("release count must be positive, got %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return 0, fmt.Errorf("release %s: %w", id, ErrNotFound)
	}
	s.medicines[pos].Stock += n
	return s.medicines[pos].Stock, nil
}

// Search returns medicines whose name, generic name or brand contains the
// term, case-insensitively, in catalog iteration order.
func (s *Store) Search(term string) []Medicine {
	term = strings.ToLower(strings.TrimSpace(term))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Medicine
	for _, m := range s.medicines {
		if strings.Contains(strings.ToLower(m.Name), term) ||
			strings.Contains(strings.ToLower(m.GenericName), term) ||
			strings.Contains(strings.ToLower(m.Brand), term) {
			results = append(results, m)
		}
	}
	return results
}

// ByCategory returns medicines in the given category, or everything when
// category is "all" or empty.
func (s *Store) ByCategory(category string) []Medicine {
	if category == "" || strings.EqualFold(category, "all") {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Medicine
	for _, m := range s.medicines {
		if strings.EqualFold(m.Category, category) {
			results = append(results, m)
		}
	}
	return results
}

// CategoryCount holds a category name and how many medicines it contains.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Categories returns the distinct categories with their medicine counts,
// sorted by name.
func (s *Store) Categories() []CategoryCount {
	s.mu.RLock()
	counts := make(map[string]int)
	for _, m := range s.medicines {
		counts[m.Category]++
	}
	s.mu.RUnlock()

	out := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// TotalStock sums the stock counters of all medicines.
func (s *Store) TotalStock() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, m := range s.medicines {
		total += m.Stock
	}
	return total
}
