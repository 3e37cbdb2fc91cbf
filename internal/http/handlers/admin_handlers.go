package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/auth"
	mw "github.com/rogerio-castellano/storefront/internal/http/middleware"
	"go.uber.org/zap"
)

// LoginHandler godoc
// @Summary Authenticate the administrator and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if h.admin == nil || h.tokens == nil {
		http.Error(w, "admin access disabled", http.StatusNotFound)
		return
	}

	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil || creds.Username == "" || creds.Password == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if err := h.admin.Verify(creds.Username, creds.Password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("credential check failed", zap.Error(err))
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Generate(creds.Username, auth.RoleAdmin)
	if err != nil {
		h.logger.Error("could not sign token", zap.Error(err))
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	h.respond(w, http.StatusOK, LoginResult{Token: token})
}

// RestockHandler godoc
// @Summary Adjust product stock
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param adjustment body StockAdjustmentRequest true "Stock delta"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Stock cannot go below zero"
// @Router /admin/products/{id}/restock [post]
func (h *Handlers) RestockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req StockAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil || req.Delta == 0 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	product, err := h.shop.Restock(r.Context(), id, req.Delta)
	if err != nil {
		h.writeShopError(w, err)
		return
	}
	h.logger.Info("admin restock",
		zap.String("admin", mw.Username(r)),
		zap.Int("product_id", id),
		zap.Int("delta", req.Delta))

	h.respond(w, http.StatusOK, toProductResponse(product))
}

// ResetCatalogHandler godoc
// @Summary Reload the catalog from its source
// @Description Discards the persisted catalog and cart, then fetches the product list again
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MessageResult
// @Failure 401 {string} string "Unauthorized"
// @Failure 503 {string} string "Catalog unavailable"
// @Router /admin/catalog/reset [post]
func (h *Handlers) ResetCatalogHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.ResetCatalog(r.Context()); err != nil {
		h.writeShopError(w, err)
		return
	}
	h.logger.Info("admin catalog reset", zap.String("admin", mw.Username(r)))

	h.respond(w, http.StatusOK, MessageResult{Message: "catalog reloaded"})
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
