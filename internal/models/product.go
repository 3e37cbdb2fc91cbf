package models

import "github.com/shopspring/decimal"

// Product represents a product entity in the storefront catalog.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Details     ProductDetails  `json:"details"`
}

// ProductDetails holds the nested attributes shown on the product detail view.
type ProductDetails struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	Dosage       string `json:"dosage,omitempty"`
	Form         string `json:"form,omitempty"`
}

func (p Product) OutOfStock() bool {
	return p.Stock <= 0
}
