package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store holds the per-customer session carts. Carts are in-memory only;
// they never outlive the process and are dropped at checkout or logout.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Get returns the customer's cart, creating it on first use
func (s *Store) Get(customerID uuid.UUID) *Cart {
	s.mu.RLock()
	c, ok := s.carts[customerID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[customerID]; ok {
		return c
	}
	c = New()
	s.carts[customerID] = c
	return c
}

// Peek returns the customer's cart without creating one
func (s *Store) Peek(customerID uuid.UUID) (*Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[customerID]
	return c, ok
}

// Drop discards the customer's cart
func (s *Store) Drop(customerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, customerID)
}
