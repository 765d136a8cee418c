// Package state holds the process's mirror of the durable collections.
package state

import (
	"sync"
	"time"

	"orderboard/board-svc/internal/domain"
)

// Store is the best-known local view of restaurants and orders. It is
// advisory only: the blob store owns the canonical data, and a later
// ReplaceAll wins over any incremental event applied before it. Every apply
// operation is idempotent, so duplicate or replayed broadcasts converge on
// the same state.
type Store struct {
	mu          sync.RWMutex
	restaurants []domain.Restaurant
	orders      []domain.Order
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceAll installs a fresh snapshot, normalizing entries that still miss
// a createdAt stamp.
func (s *Store) ReplaceAll(restaurants []domain.Restaurant, orders []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants = normalizeRestaurants(restaurants)
	s.orders = append([]domain.Order(nil), orders...)
}

func normalizeRestaurants(list []domain.Restaurant) []domain.Restaurant {
	out := make([]domain.Restaurant, 0, len(list))
	for _, rest := range list {
		if rest.Name == "" {
			continue
		}
		if rest.CreatedAt.IsZero() {
			rest.CreatedAt = time.Now().UTC()
		}
		out = append(out, rest)
	}
	return out
}

// ApplyRestaurantAdded inserts unless an entry with the same name exists.
func (s *Store) ApplyRestaurantAdded(rest domain.Restaurant) bool {
	if rest.Name == "" {
		return false
	}
	if rest.CreatedAt.IsZero() {
		rest.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.restaurants {
		if existing.Name == rest.Name {
			return false
		}
	}
	s.restaurants = append(s.restaurants, rest)
	return true
}

func (s *Store) ApplyRestaurantRemoved(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.restaurants[:0]
	removed := false
	for _, rest := range s.restaurants {
		if rest.Name == name {
			removed = true
			continue
		}
		kept = append(kept, rest)
	}
	s.restaurants = kept
	return removed
}

// ApplyOrderAdded appends the order. A duplicate id means the broadcast was
// redelivered, so the existing entry is replaced instead of a second one
// being created.
func (s *Store) ApplyOrderAdded(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.orders {
		if existing.ID == order.ID {
			s.orders[i] = order
			return
		}
	}
	s.orders = append(s.orders, order)
}

// ApplyOrderUpdated replaces the matching entry. An unknown id is an
// out-of-order delivery after a delete and is a no-op.
func (s *Store) ApplyOrderUpdated(order domain.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.orders {
		if existing.ID == order.ID {
			s.orders[i] = order
			return true
		}
	}
	return false
}

func (s *Store) ApplyOrderRemoved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.orders {
		if existing.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the orders collection. Restaurants are untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
}

// Restaurants returns a copy of the mirrored restaurant list.
func (s *Store) Restaurants() []domain.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Restaurant(nil), s.restaurants...)
}

// Orders returns a copy of the mirrored order list.
func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Order(nil), s.orders...)
}
