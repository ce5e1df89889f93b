package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/cart"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/catalog"
)

type CartHandler struct {
	carts   *cart.Service
	holder  *catalog.Holder
	timeout time.Duration
}

func NewCartHandler(carts *cart.Service, holder *catalog.Holder, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		holder:  holder,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price,omitempty"`
	LineTotal string `json:"line_total,omitempty"`
	Available bool   `json:"available"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Total      string             `json:"total"`
}

// Get renders the cart listing: every line in insertion order,
// unavailable lines included with their placeholder, the badge count
// and the display total.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionIDFromContext(r.Context())
	snap, _ := h.holder.Current()

	respondJSON(w, http.StatusOK, h.cartResponse(ctx, sessionID, snap))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	if err := h.carts.Add(ctx, sessionID, req.ProductID, req.Quantity); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
		return
	}

	snap, _ := h.holder.Current()
	respondJSON(w, http.StatusCreated, h.cartResponse(ctx, sessionID, snap))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	// Zero and negative quantities remove the line.
	sessionID := sessionIDFromContext(r.Context())
	h.carts.SetQuantity(ctx, sessionID, productID, req.Quantity)

	snap, _ := h.holder.Current()
	respondJSON(w, http.StatusOK, h.cartResponse(ctx, sessionID, snap))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	h.carts.Remove(ctx, sessionID, productID)

	snap, _ := h.holder.Current()
	respondJSON(w, http.StatusOK, h.cartResponse(ctx, sessionID, snap))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionIDFromContext(r.Context())
	h.carts.Clear(ctx, sessionID)

	snap, _ := h.holder.Current()
	respondJSON(w, http.StatusOK, h.cartResponse(ctx, sessionID, snap))
}

func (h *CartHandler) cartResponse(ctx context.Context, sessionID string, snap *catalog.Snapshot) CartResponse {
	resolved := h.carts.ResolvedLines(ctx, sessionID, snap)
	items := make([]CartItemResponse, len(resolved))
	for i, line := range resolved {
		item := CartItemResponse{
			ProductID: line.ProductID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			Available: line.Available,
		}
		if line.Available {
			item.UnitPrice = line.UnitPrice.StringFixed(2)
			item.LineTotal = line.LineTotal.StringFixed(2)
		}
		items[i] = item
	}

	return CartResponse{
		Items:      items,
		TotalItems: h.carts.TotalItemCount(ctx, sessionID),
		Total:      h.carts.ResolvedTotal(ctx, sessionID, snap).StringFixed(2),
	}
}
