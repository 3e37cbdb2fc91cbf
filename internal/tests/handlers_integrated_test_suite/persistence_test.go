package handlers_integrated_test_suite

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/storefront/internal/http/handlers"
)

func TestCartSurvivesRestart(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.store(t)
			prefix := uniquePrefix()

			r := startShop(t, store, prefix)
			doRequest(r, http.MethodPost, "/cart/items", handler.AddToCartRequest{ProductID: 1})
			doRequest(r, http.MethodPost, "/cart/items", handler.AddToCartRequest{ProductID: 1})
			doRequest(r, http.MethodPost, "/cart/items", handler.AddToCartRequest{ProductID: 2})

			restarted := startShop(t, store, prefix)
			cart := getCart(t, restarted)
			if cart.Summary.TotalUnits != 3 || cart.Summary.LineCount != 2 {
				t.Errorf("expected 3 units over 2 lines after restart, got %+v", cart.Summary)
			}
		})
	}
}

func TestCheckoutSurvivesRestart(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.store(t)
			prefix := uniquePrefix()

			r := startShop(t, store, prefix)
			doRequest(r, http.MethodPost, "/cart/items", handler.AddToCartRequest{ProductID: 1})
			doRequest(r, http.MethodPatch, "/cart/items/1", handler.QuantityChangeRequest{Delta: 2})
			if w := doRequest(r, http.MethodPost, "/cart/checkout", nil); w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			doRequest(r, http.MethodPost, "/products/2/buy", nil)

			restarted := startShop(t, store, prefix)
			if got := getStock(t, restarted, 1); got != 2 {
				t.Errorf("expected paracetamol stock 2 after restart, got %d", got)
			}
			if got := getStock(t, restarted, 2); got != 1 {
				t.Errorf("expected ibuprofen stock 1 after restart, got %d", got)
			}
			if cart := getCart(t, restarted); len(cart.Lines) != 0 {
				t.Errorf("expected empty cart after restart, got %d lines", len(cart.Lines))
			}
		})
	}
}

func TestAdminRoutesDisabledWithoutCredentials(t *testing.T) {
	r := startShop(t, redisStore(t), uniquePrefix())

	if w := doRequest(r, http.MethodPost, "/admin/catalog/reset", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected admin routes to be unmounted, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/login", handler.CredentialsRequest{Username: "admin", Password: "x"}); w.Code != http.StatusNotFound {
		t.Errorf("expected login to be disabled, got %d", w.Code)
	}
}
