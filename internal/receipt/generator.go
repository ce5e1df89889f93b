// Package receipt turns checkout data into a renderer-agnostic
// receipt document and materializes rendered documents through a sink.
package receipt

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

// Item is one priced input line for receipt generation.
type Item struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Generator builds receipt documents. It is pure: identical inputs,
// including the timestamp, always produce the identical document.
// Customer name validation belongs to the checkout flow; the
// generator records whatever it is handed.
type Generator struct {
	merchant string
	footer   string
}

func NewGenerator(merchant string) *Generator {
	return &Generator{
		merchant: merchant,
		footer:   "Gracias por su compra!",
	}
}

// Generate computes per-line totals rounded to 2 decimals for display
// and a grand total as the exact sum of exact line amounts. Summing
// before rounding keeps cent drift out of long receipts.
func (g *Generator) Generate(customerName string, items []Item, ts time.Time) domain.ReceiptDocument {
	lines := make([]domain.ReceiptLine, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		amount := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(amount)
		lines = append(lines, domain.ReceiptLine{
			Title:     item.Title,
			Quantity:  item.Quantity,
			LineTotal: amount.Round(2),
		})
	}

	return domain.ReceiptDocument{
		Header: domain.ReceiptHeader{
			MerchantName: g.merchant,
			Timestamp:    ts,
			CustomerName: customerName,
		},
		Lines:  lines,
		Total:  total,
		Footer: g.footer,
	}
}
