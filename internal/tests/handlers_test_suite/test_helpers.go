package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront/internal/auth"
	handler "github.com/rogerio-castellano/storefront/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront/internal/http/router"
	"github.com/rogerio-castellano/storefront/internal/metrics"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/shop"
	"github.com/rogerio-castellano/storefront/internal/source"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	paracetamolID = 1
	ibuprofenID   = 2
	vitaminCID    = 3
	unknownID     = 99

	adminPassword = "secret"
)

func seedProducts() []models.Product {
	return []models.Product{
		{ID: paracetamolID, Name: "Paracetamol 750mg", Category: "Analgesics", Description: "Pain and fever relief", Price: decimal.RequireFromString("12.90"), Stock: 5},
		{ID: ibuprofenID, Name: "Ibuprofen 400mg", Category: "Anti-inflammatories", Description: "Anti-inflammatory tablets", Price: decimal.RequireFromString("18.50"), Stock: 2},
		{ID: vitaminCID, Name: "Vitamin C 1g", Category: "Supplements", Description: "Effervescent tablets", Price: decimal.RequireFromString("21.00"), Stock: 0},
	}
}

type testServer struct {
	router  http.Handler
	store   *repo.InMemorySnapshotStore
	metrics *metrics.Metrics
}

type serverOption func(*router.Options)

func withLimiter(rps float64, burst int) serverOption {
	return func(o *router.Options) {
		o.Limiter = rl.New(rps, burst)
	}
}

func withLogger(logger *zap.Logger) serverOption {
	return func(o *router.Options) {
		o.Logger = logger
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	store := repo.NewInMemorySnapshotStore()
	m := metrics.New()
	s := shop.New(shop.Options{
		Store: store,
		Source: source.FetcherFunc(func(ctx context.Context) ([]models.Product, error) {
			return seedProducts(), nil
		}),
		Recorder: m,
		Logger:   zap.NewNop(),
	})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("loading shop: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	tokens := auth.NewTokens("test-secret-test-secret", time.Minute)
	admin := auth.NewAdmin("admin", string(hash))

	ro := router.Options{
		Tokens:  tokens,
		Metrics: m.Handler(),
		Logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&ro)
	}
	ro.Handlers = handler.New(s, tokens, admin, ro.Logger)

	return &testServer{router: router.NewRouter(ro), store: store, metrics: m}
}

func doRequest(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := doRequest(r, http.MethodPost, "/login", handler.CredentialsRequest{Username: username, Password: password}, "")
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func addToCart(r http.Handler, productID int) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/cart/items", handler.AddToCartRequest{ProductID: productID}, "")
}

func getCart(t *testing.T, r http.Handler) handler.CartResponse {
	t.Helper()
	w := doRequest(r, http.MethodGet, "/cart", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.CartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding cart: %v", err)
	}
	return resp
}

func getProduct(t *testing.T, r http.Handler, id int) handler.ProductResponse {
	t.Helper()
	w := doRequest(r, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	return resp
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
