package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptDocument is the renderer-agnostic model of a purchase
// confirmation. It is derived at checkout time and never stored.
type ReceiptDocument struct {
	Header ReceiptHeader
	Lines  []ReceiptLine
	Total  decimal.Decimal
	Footer string
}

type ReceiptHeader struct {
	MerchantName string
	Timestamp    time.Time
	CustomerName string
}

// ReceiptLine carries a display-rounded line total. The document
// Total is the exact sum of exact line amounts, not the sum of the
// rounded values.
type ReceiptLine struct {
	Title     string
	Quantity  int
	LineTotal decimal.Decimal
}
