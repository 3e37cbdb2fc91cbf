package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a pending purchase of one product. A cart holds at most one line per product.
type CartLine struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// LineView is a cart line joined with its catalog product.
type LineView struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	UniqueItems int             `json:"unique_items"`
	TotalUnits  int             `json:"total_units"`
	LineCount   int             `json:"line_count"`
}

// Receipt is the outcome of a completed checkout.
type Receipt struct {
	ID         string          `json:"id"`
	Lines      []LineView      `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	TotalUnits int             `json:"total_units"`
	CreatedAt  time.Time       `json:"created_at"`
}
