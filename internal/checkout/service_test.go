package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/cart"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/catalog"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/receipt"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/store"
)

type mockSink struct {
	docs []domain.ReceiptDocument
	err  error
}

func (m *mockSink) Save(doc domain.ReceiptDocument) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.docs = append(m.docs, doc)
	return "/tmp/receipt.txt", nil
}

type mockIntake struct {
	err   error
	calls int
}

func (m *mockIntake) Authorize(context.Context, PaymentDetails) error {
	m.calls++
	return m.err
}

var validDetails = PaymentDetails{
	FullName:   "Ada Lovelace",
	CardNumber: "4111111111111111",
	Expiry:     "12/29",
	CVV:        "123",
}

var checkoutTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func setup(t *testing.T, intake PaymentIntake) (*Service, *cart.Service, *mockSink) {
	t.Helper()
	carts := cart.NewService(store.NewMemoryStore())
	sink := &mockSink{}
	sut := NewService(carts, receipt.NewGenerator("ShopMaster"), sink, intake)
	sut.now = func() time.Time { return checkoutTime }
	return sut, carts, sink
}

func snapshot(products ...domain.Product) *catalog.Snapshot {
	return catalog.NewSnapshot(products)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCheckout_EmptyCart(t *testing.T) {
	intake := &mockIntake{}
	sut, _, sink := setup(t, intake)

	_, err := sut.Checkout(context.Background(), "s1", snapshot(), validDetails)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, intake.calls, "intake must not run for an empty cart")
	assert.Empty(t, sink.docs)
}

func TestCheckout_UnresolvedLineBlocks(t *testing.T) {
	intake := &mockIntake{}
	sut, carts, _ := setup(t, intake)
	ctx := context.Background()
	snap := snapshot(domain.Product{ID: 1, Title: "Widget", Price: price("9.99")})

	require.NoError(t, carts.Add(ctx, "s1", 1, 1))
	require.NoError(t, carts.Add(ctx, "s1", 999, 1)) // delisted

	_, err := sut.Checkout(ctx, "s1", snap, validDetails)

	assert.ErrorIs(t, err, ErrUnresolvedLines)
	assert.Zero(t, intake.calls)
	assert.Equal(t, 2, carts.TotalItemCount(ctx, "s1"), "cart untouched")
}

func TestCheckout_ValidationFailureLeavesCartUntouched(t *testing.T) {
	sut, carts, sink := setup(t, FormIntake{})
	ctx := context.Background()
	snap := snapshot(domain.Product{ID: 1, Title: "Widget", Price: price("9.99")})

	require.NoError(t, carts.Add(ctx, "s1", 1, 2))

	details := validDetails
	details.FullName = "   "
	_, err := sut.Checkout(ctx, "s1", snap, details)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, sink.docs)
	assert.Equal(t, 2, carts.TotalItemCount(ctx, "s1"))
}

func TestCheckout_DeclinedIntakeAborts(t *testing.T) {
	intake := &mockIntake{err: errors.New("issuer said no")}
	sut, carts, sink := setup(t, intake)
	ctx := context.Background()
	snap := snapshot(domain.Product{ID: 1, Title: "Widget", Price: price("9.99")})

	require.NoError(t, carts.Add(ctx, "s1", 1, 2))

	_, err := sut.Checkout(ctx, "s1", snap, validDetails)

	assert.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Empty(t, sink.docs)
	assert.Equal(t, 2, carts.TotalItemCount(ctx, "s1"))
}

func TestCheckout_Success(t *testing.T) {
	sut, carts, sink := setup(t, FormIntake{})
	ctx := context.Background()
	snap := snapshot(
		domain.Product{ID: 1, Title: "A", Price: price("5.00")},
		domain.Product{ID: 2, Title: "B", Price: price("3.50")},
	)

	require.NoError(t, carts.Add(ctx, "s1", 1, 2))
	require.NoError(t, carts.Add(ctx, "s1", 2, 1))

	result, err := sut.Checkout(ctx, "s1", snap, validDetails)
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "Ada Lovelace", doc.Header.CustomerName)
	assert.Equal(t, checkoutTime, doc.Header.Timestamp)
	assert.Equal(t, "13.50", doc.Total.StringFixed(2))
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "10.00", doc.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "3.50", doc.Lines[1].LineTotal.StringFixed(2))

	require.Len(t, sink.docs, 1, "document handed to the sink")
	assert.Equal(t, "/tmp/receipt.txt", result.SavedTo)

	assert.Zero(t, carts.TotalItemCount(ctx, "s1"), "cart cleared after checkout")
}

func TestCheckout_SinkFailureDoesNotFailCheckout(t *testing.T) {
	carts := cart.NewService(store.NewMemoryStore())
	sink := &mockSink{err: errors.New("disk full")}
	sut := NewService(carts, receipt.NewGenerator("ShopMaster"), sink, FormIntake{})
	ctx := context.Background()
	snap := snapshot(domain.Product{ID: 1, Title: "Widget", Price: price("9.99")})

	require.NoError(t, carts.Add(ctx, "s1", 1, 1))

	result, err := sut.Checkout(ctx, "s1", snap, validDetails)
	require.NoError(t, err)
	assert.Empty(t, result.SavedTo)
	assert.Zero(t, carts.TotalItemCount(ctx, "s1"))
}

func TestFormIntake_Validation(t *testing.T) {
	intake := FormIntake{}
	ctx := context.Background()

	assert.NoError(t, intake.Authorize(ctx, validDetails))

	for _, mutate := range []func(*PaymentDetails){
		func(d *PaymentDetails) { d.FullName = "" },
		func(d *PaymentDetails) { d.CardNumber = " " },
		func(d *PaymentDetails) { d.Expiry = "" },
		func(d *PaymentDetails) { d.CVV = "\t" },
	} {
		details := validDetails
		mutate(&details)
		assert.ErrorIs(t, intake.Authorize(ctx, details), ErrValidation)
	}
}
