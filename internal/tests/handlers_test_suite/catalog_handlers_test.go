package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	handler "github.com/rogerio-castellano/storefront/internal/http/handlers"
)

func TestSearchProductsHandler(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name        string
		term        string
		expectIDs   []int
		expectEmpty bool
	}{
		{name: "Empty term lists everything", term: "", expectIDs: []int{paracetamolID, ibuprofenID, vitaminCID}},
		{name: "Name match", term: "ibu", expectIDs: []int{ibuprofenID}},
		{name: "Case insensitive", term: "PARACETAMOL", expectIDs: []int{paracetamolID}},
		{name: "Category match", term: "supplements", expectIDs: []int{vitaminCID}},
		{name: "Description match", term: "tablets", expectIDs: []int{ibuprofenID, vitaminCID}},
		{name: "Whitespace is trimmed", term: "  fever ", expectIDs: []int{paracetamolID}},
		{name: "No match", term: "antibiotic", expectEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(ts.router, http.MethodGet, "/products?q="+url.QueryEscape(tt.term), nil, "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}

			var resp handler.ProductsSearchResult
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			if tt.expectEmpty {
				if len(resp.Data) != 0 {
					t.Errorf("expected no products, got %d", len(resp.Data))
				}
				if resp.Message != "no products match the search term" {
					t.Errorf("unexpected message %q", resp.Message)
				}
				return
			}

			if resp.Meta.TotalCount != len(tt.expectIDs) {
				t.Errorf("expected total_count %d, got %d", len(tt.expectIDs), resp.Meta.TotalCount)
			}
			if len(resp.Data) != len(tt.expectIDs) {
				t.Fatalf("expected %d products, got %d", len(tt.expectIDs), len(resp.Data))
			}
			for i, id := range tt.expectIDs {
				if resp.Data[i].Id != id {
					t.Errorf("position %d: expected product %d, got %d", i, id, resp.Data[i].Id)
				}
			}
			if resp.Message != "" {
				t.Errorf("expected no message, got %q", resp.Message)
			}
		})
	}
}

func TestGetProductHandler(t *testing.T) {
	ts := newTestServer(t)

	p := getProduct(t, ts.router, vitaminCID)
	if p.Name != "Vitamin C 1g" {
		t.Errorf("expected Vitamin C 1g, got %q", p.Name)
	}
	if !p.OutOfStock {
		t.Error("expected product to be flagged out of stock")
	}
	if !p.Price.Equal(mustDecimal("21.00")) {
		t.Errorf("expected price 21.00, got %s", p.Price)
	}

	tests := []struct {
		path       string
		expectCode int
	}{
		{fmt.Sprintf("/products/%d", unknownID), http.StatusNotFound},
		{"/products/abc", http.StatusBadRequest},
		{"/products/-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := doRequest(ts.router, http.MethodGet, tt.path, nil, "")
		if w.Code != tt.expectCode {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.expectCode, w.Code)
		}
	}
}

func TestBuyNowHandler(t *testing.T) {
	ts := newTestServer(t)

	w := doRequest(ts.router, http.MethodPost, fmt.Sprintf("/products/%d/buy", ibuprofenID), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Stock != 1 {
		t.Errorf("expected stock 1, got %d", resp.Stock)
	}

	if cart := getCart(t, ts.router); len(cart.Lines) != 0 {
		t.Errorf("buy now must not touch the cart, got %d lines", len(cart.Lines))
	}

	// Drain the last unit, then the next purchase is rejected.
	doRequest(ts.router, http.MethodPost, fmt.Sprintf("/products/%d/buy", ibuprofenID), nil, "")
	w = doRequest(ts.router, http.MethodPost, fmt.Sprintf("/products/%d/buy", ibuprofenID), nil, "")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict, got %d", w.Code)
	}
	if got := getProduct(t, ts.router, ibuprofenID).Stock; got != 0 {
		t.Errorf("expected stock 0, got %d", got)
	}

	w = doRequest(ts.router, http.MethodPost, fmt.Sprintf("/products/%d/buy", unknownID), nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}
