package catalog

import (
	"context"
	"errors"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

// ErrUnavailable marks any failure to fetch or parse the product
// catalog. Callers surface it as a retryable error state and must not
// retry automatically.
var ErrUnavailable = errors.New("catalog unavailable")

// Provider supplies the product list for a session.
// Consumers define this interface, not the implementations.
type Provider interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
}

// Snapshot is the immutable product list fetched for the current
// session. A persisted cart can go stale relative to it; lookups for
// delisted products simply miss.
type Snapshot struct {
	products []domain.Product
	byID     map[int64]int
}

func NewSnapshot(products []domain.Product) *Snapshot {
	byID := make(map[int64]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &Snapshot{products: products, byID: byID}
}

func (s *Snapshot) Find(id int64) (domain.Product, bool) {
	if s == nil {
		return domain.Product{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *Snapshot) Products() []domain.Product {
	if s == nil {
		return nil
	}
	return s.products
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.products)
}
