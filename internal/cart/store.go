package cart

import (
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/pkg/clock"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// Store owns the session's line items. Mutations are visible to every holder of the
// Store as soon as the call returns; callers only ever receive copies of the items.
type Store struct {
	mu       sync.RWMutex
	items    []domain.CartItem
	currency currency.Unit
	clock    clock.Clock
	logger   *zap.Logger
}

func NewStore(unit currency.Unit, clk clock.Clock, logger *zap.Logger) *Store {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		currency: unit,
		clock:    clk,
		logger:   logger,
	}
}

// AddItem merges item into the line with the same product ID or appends a new line.
// A non-positive quantity is merged as zero: nothing changes and no line is created.
func (s *Store) AddItem(item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity <= 0 {
		s.logger.Debug("ignoring non-positive add",
			zap.Int64("product_id", item.ProductID),
			zap.Int("quantity", item.Quantity))
		return
	}

	if i := s.indexOf(item.ProductID); i >= 0 {
		s.items[i].Quantity += item.Quantity
		return
	}

	item.CreatedAt = s.clock.Now()
	s.items = append(s.items, item)
}

// UpdateQuantity sets the quantity of an existing line. Zero keeps the line in the cart.
// It reports false for an unknown product ID.
func (s *Store) UpdateQuantity(productID int64, quantity int) (bool, error) {
	if quantity < 0 {
		return false, fmt.Errorf("quantity %d: %w", quantity, domain.ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false, nil
	}

	s.items[i].Quantity = quantity
	return true, nil
}

func (s *Store) RemoveItem(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}

	s.items = slices.Delete(s.items, i, i+1)
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
}

func (s *Store) Total() domain.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.total()
}

func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

// Cart returns the items and their total read under one lock.
func (s *Store) Cart() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Cart{
		Items: slices.Clone(s.items),
		Total: s.total(),
	}
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *Store) Contains(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexOf(productID) >= 0
}

func (s *Store) total() domain.Money {
	total := domain.ZeroMoney(s.currency)
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) indexOf(productID int64) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.ProductID == productID
	})
}
