package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/cart"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/catalog"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/store"
)

type stubProvider struct {
	products []domain.Product
	err      error
}

func (s stubProvider) FetchAll(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Widget", Price: decimal.RequireFromString("9.99")},
		{ID: 2, Title: "Gadget", Price: decimal.RequireFromString("4.50")},
	}
}

func newCartFixture(t *testing.T) (*chi.Mux, *cart.Service) {
	t.Helper()

	holder := catalog.NewHolder(stubProvider{products: testProducts()})
	_, err := holder.Refresh(context.Background())
	require.NoError(t, err)

	carts := cart.NewService(store.NewMemoryStore())
	h := NewCartHandler(carts, holder, time.Second)

	r := chi.NewRouter()
	r.Get("/cart", h.Get)
	r.Delete("/cart", h.Clear)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{product_id}", h.UpdateQuantity)
	r.Delete("/cart/items/{product_id}", h.RemoveItem)
	return r, carts
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(context.WithValue(req.Context(), sessionKey, "test-session"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var resp CartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCartHandler_AddAndGet(t *testing.T) {
	r, _ := newCartFixture(t)

	w := doRequest(t, r, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Widget", resp.Items[0].Title)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "19.98", resp.Items[0].LineTotal)
	assert.Equal(t, 2, resp.TotalItems)
	assert.Equal(t, "19.98", resp.Total)
}

func TestCartHandler_AddValidation(t *testing.T) {
	r, _ := newCartFixture(t)

	tests := []struct {
		name string
		body interface{}
		code string
	}{
		{"zero quantity", AddItemRequestDTO{ProductID: 1, Quantity: 0}, "invalid_quantity"},
		{"negative quantity", AddItemRequestDTO{ProductID: 1, Quantity: -1}, "invalid_quantity"},
		{"excessive quantity", AddItemRequestDTO{ProductID: 1, Quantity: 100}, "invalid_quantity"},
		{"missing product", AddItemRequestDTO{ProductID: 0, Quantity: 1}, "invalid_product_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/cart/items", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	r, _ := newCartFixture(t)

	doRequest(t, r, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 2})

	w := doRequest(t, r, http.MethodPut, "/cart/items/1", UpdateQuantityRequestDTO{Quantity: 3})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	assert.Equal(t, 3, resp.TotalItems)
	assert.Equal(t, "29.97", resp.Total)
}

func TestCartHandler_UpdateQuantityZeroRemoves(t *testing.T) {
	r, _ := newCartFixture(t)

	doRequest(t, r, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 2})

	w := doRequest(t, r, http.MethodPut, "/cart/items/1", UpdateQuantityRequestDTO{Quantity: 0})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.TotalItems)
}

func TestCartHandler_RemoveAndClear(t *testing.T) {
	r, _ := newCartFixture(t)

	doRequest(t, r, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})
	doRequest(t, r, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: 2, Quantity: 1})

	w := doRequest(t, r, http.MethodDelete, "/cart/items/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeCart(t, w).Items, 1)

	w = doRequest(t, r, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Items)
}

func TestCartHandler_UnavailableItemShowsPlaceholder(t *testing.T) {
	r, carts := newCartFixture(t)

	require.NoError(t, carts.Add(context.Background(), "test-session", 999, 2))

	w := doRequest(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.False(t, resp.Items[0].Available)
	assert.Equal(t, domain.PlaceholderTitle, resp.Items[0].Title)
	assert.Equal(t, "0.00", resp.Total, "unavailable items are excluded from the total")
}
