// Package cart implements the session cart: an in-memory ordered line
// list written through to the configured store on every mutation.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/catalog"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/store"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Service owns one cart per session. A cart is hydrated from the
// store on first touch and mutated only through the operations below;
// each mutation persists synchronously and then notifies observers.
type Service struct {
	store store.Store

	mu       sync.Mutex
	carts    map[string][]domain.CartLine
	onChange []func(sessionID string)
}

func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		carts: make(map[string][]domain.CartLine),
	}
}

// OnChange registers a callback invoked after every persisted
// mutation, on the mutating goroutine. Register before serving.
func (s *Service) OnChange(fn func(sessionID string)) {
	s.onChange = append(s.onChange, fn)
}

// Add merges quantity into an existing line for the product or
// appends a new line at the end. Repeated adds accumulate.
func (s *Service) Add(ctx context.Context, sessionID string, productID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	s.mu.Lock()
	lines := s.load(ctx, sessionID)
	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	}
	s.carts[sessionID] = lines
	s.persist(ctx, sessionID, lines)
	s.mu.Unlock()

	s.notify(sessionID)
	return nil
}

// Remove deletes the line for the product. Removing an absent product
// is a no-op, not an error.
func (s *Service) Remove(ctx context.Context, sessionID string, productID int64) {
	s.mu.Lock()
	lines := s.load(ctx, sessionID)
	changed := false
	for i, l := range lines {
		if l.ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			changed = true
			break
		}
	}
	if changed {
		s.carts[sessionID] = lines
		s.persist(ctx, sessionID, lines)
	}
	s.mu.Unlock()

	if changed {
		s.notify(sessionID)
	}
}

// SetQuantity replaces the quantity of an existing line. A quantity
// of zero or less removes the line. It never creates a line; setting
// a quantity for an absent product is a no-op.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, sessionID, productID)
		return
	}

	s.mu.Lock()
	lines := s.load(ctx, sessionID)
	changed := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			changed = true
			break
		}
	}
	if changed {
		s.carts[sessionID] = lines
		s.persist(ctx, sessionID, lines)
	}
	s.mu.Unlock()

	if changed {
		s.notify(sessionID)
	}
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, sessionID string) {
	s.mu.Lock()
	s.carts[sessionID] = nil
	s.persist(ctx, sessionID, nil)
	s.mu.Unlock()

	s.notify(sessionID)
}

// Lines returns a copy of the cart in insertion order.
func (s *Service) Lines(ctx context.Context, sessionID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.load(ctx, sessionID)
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}

// TotalItemCount is the sum of all quantities, 0 for an empty cart.
func (s *Service) TotalItemCount(ctx context.Context, sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.load(ctx, sessionID) {
		total += l.Quantity
	}
	return total
}

// ResolvedLines joins the cart with the catalog snapshot in insertion
// order. Lines whose product is missing from the snapshot stay in the
// listing with a placeholder title, Available=false and a zero price.
func (s *Service) ResolvedLines(ctx context.Context, sessionID string, snap *catalog.Snapshot) []domain.ResolvedLine {
	lines := s.Lines(ctx, sessionID)
	resolved := make([]domain.ResolvedLine, 0, len(lines))
	for _, l := range lines {
		product, ok := snap.Find(l.ProductID)
		if !ok {
			resolved = append(resolved, domain.ResolvedLine{
				ProductID: l.ProductID,
				Title:     domain.PlaceholderTitle,
				Quantity:  l.Quantity,
			})
			continue
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		resolved = append(resolved, domain.ResolvedLine{
			ProductID: l.ProductID,
			Title:     product.Title,
			Quantity:  l.Quantity,
			UnitPrice: product.Price,
			LineTotal: product.Price.Mul(qty),
			Available: true,
		})
	}
	return resolved
}

// ResolvedTotal is the exact sum of price*quantity over all lines
// whose product resolves against the snapshot. Unresolved lines
// contribute zero; they never abort the computation. Round only at
// presentation time.
func (s *Service) ResolvedTotal(ctx context.Context, sessionID string, snap *catalog.Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.ResolvedLines(ctx, sessionID, snap) {
		if l.Available {
			total = total.Add(l.LineTotal)
		}
	}
	return total
}

// load must be called with s.mu held.
func (s *Service) load(ctx context.Context, sessionID string) []domain.CartLine {
	if lines, ok := s.carts[sessionID]; ok {
		return lines
	}

	lines, err := s.store.Load(ctx, sessionID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		// A broken store degrades to an empty cart, never a blocked session.
		log.Printf("cart load failed for session %s, starting empty: %v", sessionID, err)
		lines = nil
	}
	lines = domain.NormalizeLines(lines)
	s.carts[sessionID] = lines
	return lines
}

// persist must be called with s.mu held.
func (s *Service) persist(ctx context.Context, sessionID string, lines []domain.CartLine) {
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		log.Printf("cart persist failed for session %s: %v", sessionID, err)
	}
}

func (s *Service) notify(sessionID string) {
	for _, fn := range s.onChange {
		fn(sessionID)
	}
}
