package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/catalog"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/checkout"
)

type CheckoutHandler struct {
	service *checkout.Service
	holder  *catalog.Holder
	timeout time.Duration
}

func NewCheckoutHandler(service *checkout.Service, holder *catalog.Holder, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		holder:  holder,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	FullName   string `json:"full_name"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type ReceiptLineResponse struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CheckoutResponse struct {
	Customer    string                `json:"customer"`
	Merchant    string                `json:"merchant"`
	GeneratedAt time.Time             `json:"generated_at"`
	Lines       []ReceiptLineResponse `json:"lines"`
	Total       string                `json:"total"`
	ReceiptFile string                `json:"receipt_file,omitempty"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	snap, _ := h.holder.Current()

	result, err := h.service.Checkout(ctx, sessionID, snap, checkout.PaymentDetails{
		FullName:   req.FullName,
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
	})
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	doc := result.Document
	lines := make([]ReceiptLineResponse, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = ReceiptLineResponse{
			Title:     l.Title,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal.StringFixed(2),
		}
	}

	respondJSON(w, http.StatusOK, CheckoutResponse{
		Customer:    doc.Header.CustomerName,
		Merchant:    doc.Header.MerchantName,
		GeneratedAt: doc.Header.Timestamp,
		Lines:       lines,
		Total:       doc.Total.StringFixed(2),
		ReceiptFile: result.SavedTo,
	})
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "the cart is empty")
	case errors.Is(err, checkout.ErrUnresolvedLines):
		respondError(w, http.StatusConflict, "unresolved_lines", "remove unavailable items before checking out")
	case errors.Is(err, checkout.ErrValidation):
		respondError(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, checkout.ErrPaymentDeclined):
		respondError(w, http.StatusBadGateway, "payment_failed", "payment was not accepted")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
