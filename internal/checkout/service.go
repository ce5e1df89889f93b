// Package checkout glues the cart, the payment boundary and the
// receipt generator together.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/cart"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/catalog"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/receipt"
)

// Result reports a completed checkout: the generated document and
// where the sink materialized it.
type Result struct {
	Document domain.ReceiptDocument
	SavedTo  string
}

type Service struct {
	carts  *cart.Service
	gen    *receipt.Generator
	sink   receipt.Sink
	intake PaymentIntake
	now    func() time.Time
}

func NewService(carts *cart.Service, gen *receipt.Generator, sink receipt.Sink, intake PaymentIntake) *Service {
	return &Service{
		carts:  carts,
		gen:    gen,
		sink:   sink,
		intake: intake,
		now:    time.Now,
	}
}

// Checkout runs the full sequence: eligibility checks, payment
// intake, receipt generation, document sink, cart clear. Any failure
// before the intake succeeds leaves the cart untouched.
func (s *Service) Checkout(ctx context.Context, sessionID string, snap *catalog.Snapshot, details PaymentDetails) (*Result, error) {
	if s.carts.TotalItemCount(ctx, sessionID) == 0 {
		return nil, ErrEmptyCart
	}

	resolved := s.carts.ResolvedLines(ctx, sessionID, snap)
	items := make([]receipt.Item, 0, len(resolved))
	for _, line := range resolved {
		if !line.Available {
			// Stale lines stay in the cart until the user removes them
			// or the catalog re-resolves them.
			return nil, fmt.Errorf("%w: product %d", ErrUnresolvedLines, line.ProductID)
		}
		items = append(items, receipt.Item{
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := s.intake.Authorize(ctx, details); err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}

	doc := s.gen.Generate(details.FullName, items, s.now())

	path, err := s.sink.Save(doc)
	if err != nil {
		// The purchase went through; a sink failure must not resurrect
		// the cart or fail the checkout.
		log.Printf("receipt sink failed for session %s: %v", sessionID, err)
	}

	s.carts.Clear(ctx, sessionID)

	return &Result{Document: doc, SavedTo: path}, nil
}
