package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
}
