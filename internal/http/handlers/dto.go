package handlers

import (
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	Id          int                   `json:"id"`
	Name        string                `json:"name"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Price       decimal.Decimal       `json:"price" swaggertype:"string"`
	Stock       int                   `json:"stock"`
	OutOfStock  bool                  `json:"out_of_stock,omitempty"`
	Details     models.ProductDetails `json:"details"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data    []ProductResponse `json:"data"`
	Meta    Meta              `json:"meta"`
	Message string            `json:"message,omitempty"`
}

type AddToCartRequest struct {
	ProductID int `json:"product_id"`
}

type QuantityChangeRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type CartLineResponse struct {
	ProductID int  `json:"product_id"`
	Quantity  int  `json:"quantity"`
	Removed   bool `json:"removed,omitempty"`
}

type CartResponse struct {
	Lines   []models.LineView `json:"lines"`
	Summary models.Summary    `json:"summary"`
	Message string            `json:"message,omitempty"`
}

type StockAdjustmentRequest struct {
	Delta int `json:"delta"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type MessageResult struct {
	Message string `json:"message"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		OutOfStock:  p.OutOfStock(),
		Details:     p.Details,
	}
}
