package cart

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/domain"
	"github.com/shopit/shopclient/internal/storage"
)

// Item is the add-to-cart input: a cart line without a quantity.
type Item struct {
	ProductID string
	Title     string
	Price     float64
	Image     string
}

// Store holds the authoritative client-side cart. Lines keep insertion
// order for display; no two lines share a ProductID and no line ever has
// qty <= 0. Every successful mutation re-persists the whole cart.
type Store struct {
	mu     sync.Mutex
	lines  []domain.CartLine
	slots  storage.SlotStore
	logger *zap.Logger
}

// NewStore creates a cart store and loads the persisted cart. A missing or
// corrupt slot yields an empty cart; corruption is recovered silently.
func NewStore(slots storage.SlotStore, logger *zap.Logger) *Store {
	s := &Store{slots: slots, logger: logger}

	data, err := slots.Get(context.Background(), storage.SlotCart)
	if err != nil {
		if err != storage.ErrSlotNotFound {
			logger.Warn("Failed to load persisted cart, starting empty", zap.Error(err))
		}
		return s
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn("Persisted cart is corrupt, starting empty", zap.Error(err))
		return s
	}
	s.lines = lines
	return s
}

// AddItem merges qty into an existing line or appends a new one. qty may be
// negative (quantity-adjustment UI); a merged quantity <= 0 removes the line.
// A no-op if the product id is empty, or if the line does not exist and
// qty <= 0.
func (s *Store) AddItem(ctx context.Context, item Item, qty int) error {
	if item.ProductID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != item.ProductID {
			continue
		}
		newQty := s.lines[i].Qty + qty
		if newQty <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Qty = newQty
		}
		return s.persist(ctx)
	}

	if qty <= 0 {
		return nil
	}

	s.lines = append(s.lines, domain.CartLine{
		ProductID: item.ProductID,
		Title:     item.Title,
		Price:     item.Price,
		Image:     item.Image,
		Qty:       qty,
	})
	return s.persist(ctx)
}

// UpdateQty sets a line's quantity to an absolute value. qty <= 0 removes
// the line. A no-op if the product is not in the cart.
func (s *Store) UpdateQty(ctx context.Context, productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Qty = qty
		}
		return s.persist(ctx)
	}
	return nil
}

// RemoveItem removes a line unconditionally. A no-op if absent.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart entirely.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.persist(ctx)
}

// Lines returns a snapshot copy of the cart in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// CartCount returns the sum of quantities across all lines.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Qty
	}
	return total
}

// LineCount returns the number of distinct products in the cart.
func (s *Store) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// persist re-serializes the full cart to its slot. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := s.slots.Set(ctx, storage.SlotCart, data); err != nil {
		s.logger.Error("Failed to persist cart", zap.Error(err))
		return err
	}
	return nil
}
