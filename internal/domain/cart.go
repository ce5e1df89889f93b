package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one (product, quantity) pairing in a cart. A cart holds
// at most one line per product and Quantity is always >= 1; a line
// driven to zero is removed, never stored.
type CartLine struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"quantity"`
}

// PlaceholderTitle is shown for cart lines whose product is absent
// from the current catalog snapshot.
const PlaceholderTitle = "item unavailable"

// ResolvedLine is a cart line joined with catalog product data.
// Available is false when the product is missing from the snapshot;
// such lines keep their quantity but carry a zero price.
type ResolvedLine struct {
	ProductID int64
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Available bool
}

// EncodeLines serializes cart lines as an ordered JSON array of
// {id, quantity} objects, the format persisted to the cart store.
func EncodeLines(lines []CartLine) ([]byte, error) {
	if lines == nil {
		lines = []CartLine{}
	}
	return json.Marshal(lines)
}

// DecodeLines parses a persisted cart. It never fails hard: malformed
// input yields an empty line list together with a diagnostic error the
// caller may log. Well-formed entries are normalized so the cart
// invariants hold after hydration: non-positive quantities are dropped
// and duplicate product IDs are merged by summing quantities.
func DecodeLines(raw []byte) ([]CartLine, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var parsed []CartLine
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("corrupted cart data: %w", err)
	}

	return NormalizeLines(parsed), nil
}

// NormalizeLines enforces the cart invariants on an arbitrary line
// sequence, preserving first-seen insertion order.
func NormalizeLines(lines []CartLine) []CartLine {
	var out []CartLine
	index := make(map[int64]int)
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}
