package handlers

import (
	"net/http"
)

const noMatchesMessage = "no products match the search term"

// SearchProductsHandler godoc
// @Summary Search the catalog
// @Description Case-insensitive substring match over name, category and description. An empty term lists every product.
// @Tags products
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} ProductsSearchResult
// @Failure 503 {string} string "Catalog unavailable"
// @Router /products [get]
func (h *Handlers) SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.shop.Search(r.URL.Query().Get("q"))
	if err != nil {
		h.writeShopError(w, err)
		return
	}

	result := ProductsSearchResult{
		Data: make([]ProductResponse, 0, len(products)),
		Meta: Meta{TotalCount: len(products)},
	}
	for _, p := range products {
		result.Data = append(result.Data, toProductResponse(p))
	}
	if len(products) == 0 {
		result.Message = noMatchesMessage
	}

	h.respond(w, http.StatusOK, result)
}

// GetProductHandler godoc
// @Summary Get product details
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Product not found"
// @Router /products/{id} [get]
func (h *Handlers) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.shop.Product(id)
	if err != nil {
		h.writeShopError(w, err)
		return
	}

	h.respond(w, http.StatusOK, toProductResponse(product))
}

// BuyNowHandler godoc
// @Summary Buy one unit of a product
// @Description Decrements the product stock by one without touching the cart
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Out of stock"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/buy [post]
func (h *Handlers) BuyNowHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.shop.BuyNow(r.Context(), id)
	if err != nil {
		h.writeShopError(w, err)
		return
	}

	h.respond(w, http.StatusOK, toProductResponse(product))
}
