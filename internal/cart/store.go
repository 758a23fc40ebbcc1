// Package cart holds the in-memory shopping cart for a storefront session.
// Each Store is explicitly owned by one session; there is no shared global
// cart state.
package cart

import (
	"sync"

	"github.com/aureliefinejewels/storefront-api/internal/models"
)

// Store keeps the items one session intends to purchase, in insertion order,
// with at most one line per product.
type Store struct {
	mu    sync.Mutex
	order []int64
	items map[int64]models.CartItem
}

func NewStore() *Store {
	return &Store{
		items: make(map[int64]models.CartItem),
	}
}

// AddItem puts a product into the cart. A repeated add for the same product
// increments the existing quantity. Quantities below 1 are clamped to 1.
func (s *Store) AddItem(product *models.Product, quantity int64) {

	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[product.ID]; ok {
		existing.Quantity += quantity
		s.items[product.ID] = existing

		return
	}

	s.order = append(s.order, product.ID)
	s.items[product.ID] = models.CartItem{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		Quantity:       quantity,
	}
}

// UpdateQuantity sets the quantity for an existing line. A quantity of zero
// or below removes the line. Updating an absent product is a no-op.
func (s *Store) UpdateQuantity(productID int64, quantity int64) {

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[productID]
	if !ok {
		return
	}

	if quantity <= 0 {
		s.removeLocked(productID)

		return
	}

	item.Quantity = quantity
	s.items[productID] = item
}

// RemoveItem drops a line from the cart. Removing an absent product is a
// no-op, so the call is idempotent.
func (s *Store) RemoveItem(productID int64) {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID int64) {

	if _, ok := s.items[productID]; !ok {
		return
	}

	delete(s.items, productID)

	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}
}

// Clear empties the cart. Called after a successful order placement.
func (s *Store) Clear() {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.items = make(map[int64]models.CartItem)
}

// Items returns a snapshot of the cart lines in insertion order.
func (s *Store) Items() []models.CartItem {

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}

	return items
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int64 {

	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64

	for _, item := range s.items {
		total += item.Quantity
	}

	return total
}

// TotalPriceCents is the sum of unit price × quantity across all lines,
// in paise.
func (s *Store) TotalPriceCents() int64 {

	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64

	for _, item := range s.items {
		total += item.UnitPriceCents * item.Quantity
	}

	return total
}

// Restore replaces the cart contents from a persisted snapshot.
func (s *Store) Restore(items []models.CartItem) {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.items = make(map[int64]models.CartItem)

	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}

		if _, ok := s.items[item.ProductID]; ok {
			continue
		}

		s.order = append(s.order, item.ProductID)
		s.items[item.ProductID] = item
	}
}
