package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/catalog"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

type ProductHandler struct {
	holder  *catalog.Holder
	timeout time.Duration
}

func NewProductHandler(holder *catalog.Holder, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		holder:  holder,
		timeout: timeout,
	}
}

type ProductResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// List serves the catalog snapshot, fetching it on first use. A fetch
// failure is an explicit retryable error state, never a silent empty
// list; the client retries by requesting again.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "products could not be loaded, try again")
		return
	}

	products := snap.Products()
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: out})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	snap, err := h.snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "products could not be loaded, try again")
		return
	}

	product, ok := snap.Find(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	if snap, ok := h.holder.Current(); ok {
		return snap, nil
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.holder.Refresh(ctx)
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
	}
}
