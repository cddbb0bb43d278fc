// Package cart holds the per-user shopping carts. Carts are ephemeral: they
// live in process memory, are keyed by (product id, size) within a user, and
// are destroyed on clear, checkout or restart. Nothing here touches the
// database.
package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingSize     = errors.New("size is required")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrItemNotFound    = errors.New("cart item not found")
)

// Item is one cart line. Name, image and price are snapshotted from the
// product at add time.
type Item struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Size         string          `json:"size"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	AddedAt      time.Time       `json:"added_at"`
}

// Store keeps one cart per user. Constructed at startup, torn down with the
// process; safe for concurrent request handlers.
type Store struct {
	mu    sync.Mutex
	carts map[string][]Item
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Item)}
}

// Add puts an item into the user's cart. Adding the same product in the same
// size merges quantities; the same product in another size is a separate line.
func (s *Store) Add(userID string, item Item) error {
	if item.Size == "" {
		return ErrMissingSize
	}
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == item.ProductID && items[i].Size == item.Size {
			items[i].Quantity += item.Quantity
			return nil
		}
	}
	item.AddedAt = time.Now()
	s.carts[userID] = append(items, item)
	return nil
}

// UpdateQuantity sets the quantity on an existing line. Zero removes the line.
func (s *Store) UpdateQuantity(userID, productID, size string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.Remove(userID, productID, size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

func (s *Store) Remove(userID, productID, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Items returns a copy of the user's cart lines.
func (s *Store) Items(userID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Subtotal is the pre-tax sum of the cart's line totals.
func (s *Store) Subtotal(userID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.carts[userID] {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
