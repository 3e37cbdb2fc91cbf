package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront/internal/db"
	handler "github.com/rogerio-castellano/storefront/internal/http/handlers"
	"github.com/rogerio-castellano/storefront/internal/http/router"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/redissvc"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/shop"
	"github.com/rogerio-castellano/storefront/internal/source"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type backend struct {
	name  string
	store func(t *testing.T) repo.SnapshotStore
}

func backends() []backend {
	return []backend{
		{name: "file", store: func(t *testing.T) repo.SnapshotStore {
			store, err := repo.NewFileSnapshotStore(t.TempDir())
			if err != nil {
				t.Fatalf("opening file store: %v", err)
			}
			return store
		}},
		{name: "redis", store: redisStore},
		{name: "postgres", store: postgresStore},
	}
}

func redisStore(t *testing.T) repo.SnapshotStore {
	mr := miniredis.RunT(t)
	rdb, err := redissvc.Connect(context.Background(), redissvc.Options{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connecting to redis: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return repo.NewRedisSnapshotStore(rdb)
}

func postgresStore(t *testing.T) repo.SnapshotStore {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	database, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("could not connect to database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.EnsureSchema(ctx, database); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return repo.NewPostgresSnapshotStore(database)
}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Paracetamol 750mg", Category: "Analgesics", Price: decimal.RequireFromString("12.90"), Stock: 5},
		{ID: 2, Name: "Ibuprofen 400mg", Category: "Anti-inflammatories", Price: decimal.RequireFromString("18.50"), Stock: 2},
	}
}

// startShop loads a shop from store the way the serve command does and returns its router.
// prefix isolates tests sharing a database.
func startShop(t *testing.T, store repo.SnapshotStore, prefix string) http.Handler {
	t.Helper()
	s := shop.New(shop.Options{
		Store: store,
		Source: source.FetcherFunc(func(ctx context.Context) ([]models.Product, error) {
			return seedProducts(), nil
		}),
		KeyPrefix: prefix,
		Logger:    zap.NewNop(),
	})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("loading shop: %v", err)
	}
	return router.NewRouter(router.Options{Handlers: handler.New(s, nil, nil, zap.NewNop())})
}

func uniquePrefix() string {
	return "test-" + uuid.NewString()
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getStock(t *testing.T, r http.Handler, id int) int {
	t.Helper()
	w := doRequest(r, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	return resp.Stock
}

func getCart(t *testing.T, r http.Handler) handler.CartResponse {
	t.Helper()
	w := doRequest(r, http.MethodGet, "/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.CartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding cart: %v", err)
	}
	return resp
}
