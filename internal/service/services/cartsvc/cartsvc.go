package cartsvc

import (
	"context"
	"log/slog"
	"sync"

	"github.com/foodfetch/storefront/internal/dal/interfaces/ikvbridge"
	"github.com/foodfetch/storefront/internal/service/models/cartline"
)

// CartService owns the session cart. All operations are total: malformed input
// degrades to a logged no-op, never an error.
type CartService struct {
	mu     sync.Mutex
	lines  []cartline.CartLine
	bridge ikvbridge.IKVBridge
}

// option is a function that configures the CartService.
type option func(*CartService)

// MustNewCartService creates the cart store and restores persisted lines.
func MustNewCartService(opts ...option) *CartService {
	s := &CartService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.bridge != nil {
		var lines []cartline.CartLine
		if s.bridge.Read(context.Background(), ikvbridge.KeyCart, &lines) {
			s.lines = lines
		}
	}

	return s
}

// WithBridge sets the persistence bridge for the CartService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithBridge(bridge ikvbridge.IKVBridge) option {
	return func(s *CartService) {
		s.bridge = bridge
	}
}

// AddItem inserts a new line with quantity 1 or increments the quantity of an
// existing line with the same id. Items without an id are rejected silently.
func (s *CartService) AddItem(ctx context.Context, item cartline.CartLine) {
	if item.ID == 0 {
		slog.Error("Attempted to add invalid item to cart", "name", item.Name)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == item.ID {
			s.lines[i].Quantity++
			s.persist(ctx)

			return
		}
	}

	item.Quantity = 1
	s.lines = append(s.lines, item)
	s.persist(ctx)
}

// SetQuantity sets the quantity of the line with the given id. A quantity of
// zero or less removes the line entirely.
func (s *CartService) SetQuantity(ctx context.Context, id int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
	} else {
		for i := range s.lines {
			if s.lines[i].ID == id {
				s.lines[i].Quantity = quantity

				break
			}
		}
	}

	s.persist(ctx)
}

// RemoveItem removes the line with the given id, if present.
func (s *CartService) RemoveItem(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(id)
	s.persist(ctx)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the cart lines.
func (s *CartService) Lines() []cartline.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]cartline.CartLine(nil), s.lines...)
}

// TotalItemCount returns the sum of quantities over all lines.
func (s *CartService) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}

	return count
}

// TotalPrice returns the sum of price*quantity over all lines, computed fresh
// on every call.
func (s *CartService) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, line := range s.lines {
		total += line.LineTotal()
	}

	return total
}

func (s *CartService) removeLocked(id int64) {
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)

			return
		}
	}
}

// persist writes the full line collection through the bridge. Persistence
// failures are logged, not surfaced: the in-memory cart stays authoritative.
func (s *CartService) persist(ctx context.Context) {
	if s.bridge == nil {
		return
	}

	lines := s.lines
	if lines == nil {
		lines = []cartline.CartLine{}
	}

	if err := s.bridge.Write(ctx, ikvbridge.KeyCart, lines); err != nil {
		slog.Error("Failed to persist cart", "error", err)
	}
}
