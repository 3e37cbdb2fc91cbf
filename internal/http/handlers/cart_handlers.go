package handlers

import (
	"net/http"
	"strconv"
)

const emptyCartMessage = "your cart is empty"

// GetCartHandler godoc
// @Summary Show the cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /cart [get]
func (h *Handlers) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	lines, summary, err := h.shop.Cart()
	if err != nil {
		h.writeShopError(w, err)
		return
	}

	resp := CartResponse{Lines: lines, Summary: summary}
	if len(lines) == 0 {
		resp.Message = emptyCartMessage
	}
	h.respond(w, http.StatusOK, resp)
}

// AddToCartHandler godoc
// @Summary Add one unit of a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddToCartRequest true "Product to add"
// @Success 200 {object} CartLineResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Out of stock"
// @Router /cart/items [post]
func (h *Handlers) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := readJSON(w, r, &req); err != nil || req.ProductID <= 0 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	line, err := h.shop.Add(r.Context(), req.ProductID)
	if err != nil {
		h.writeShopError(w, err)
		return
	}

	h.respond(w, http.StatusOK, CartLineResponse{ProductID: line.ProductID, Quantity: line.Quantity})
}

// ChangeQuantityHandler godoc
// @Summary Change the quantity of a cart line
// @Description A line whose quantity drops to zero or below is removed
// @Tags cart
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param change body QuantityChangeRequest true "Quantity delta"
// @Success 200 {object} CartLineResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not in cart"
// @Router /cart/items/{id} [patch]
func (h *Handlers) ChangeQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req QuantityChangeRequest
	if err := readJSON(w, r, &req); err != nil || req.Delta == 0 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	line, removed, err := h.shop.ChangeQuantity(r.Context(), id, req.Delta)
	if err != nil {
		h.writeShopError(w, err)
		return
	}

	h.respond(w, http.StatusOK, CartLineResponse{
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Removed:   removed,
	})
}

// RemoveFromCartHandler godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Param id path int true "Product ID"
// @Success 204 "No Content"
// @Failure 400 {string} string "Invalid ID"
// @Router /cart/items/{id} [delete]
func (h *Handlers) RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.shop.Remove(r.Context(), id); err != nil {
		h.writeShopError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearCartHandler godoc
// @Summary Empty the cart
// @Tags cart
// @Param confirm query bool true "Must be true"
// @Success 204 "No Content"
// @Failure 400 {string} string "Confirmation required"
// @Failure 409 {string} string "Cart is empty"
// @Router /cart [delete]
func (h *Handlers) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	if err := h.shop.Clear(r.Context(), confirmed); err != nil {
		h.writeShopError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CheckoutHandler godoc
// @Summary Check out the cart
// @Description Decrements stock for every cart line and empties the cart in one step
// @Tags cart
// @Produce json
// @Success 200 {object} models.Receipt
// @Failure 409 {string} string "Cart is empty"
// @Failure 500 {string} string "Internal error"
// @Router /cart/checkout [post]
func (h *Handlers) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.shop.Checkout(r.Context())
	if err != nil {
		h.writeShopError(w, err)
		return
	}

	h.respond(w, http.StatusOK, receipt)
}
