package shop_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/shop"
	"github.com/rogerio-castellano/storefront/internal/source"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Paracetamol 750mg", Category: "Analgesics", Description: "Pain and fever relief.", Price: decimal.RequireFromString("12.90"), Stock: 5},
		{ID: 2, Name: "Ibuprofen 400mg", Category: "Anti-inflammatories", Description: "Reduces inflammation.", Price: decimal.RequireFromString("18.50"), Stock: 2},
		{ID: 3, Name: "Loratadine 10mg", Category: "Antihistamines", Description: "Allergy relief.", Price: decimal.RequireFromString("21.00"), Stock: 0},
	}
}

type countingSource struct {
	products []models.Product
	err      error
	calls    atomic.Int32
}

func (c *countingSource) Fetch(context.Context) ([]models.Product, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return append([]models.Product(nil), c.products...), nil
}

var _ source.Fetcher = (*countingSource)(nil)

// flakyStore fails writes while fail is set.
type flakyStore struct {
	*repo.InMemorySnapshotStore
	fail atomic.Bool
}

var errStoreDown = errors.New("store down")

func (f *flakyStore) Save(ctx context.Context, key string, data []byte) error {
	if f.fail.Load() {
		return errStoreDown
	}
	return f.InMemorySnapshotStore.Save(ctx, key, data)
}

func (f *flakyStore) SaveAll(ctx context.Context, entries map[string][]byte) error {
	if f.fail.Load() {
		return errStoreDown
	}
	return f.InMemorySnapshotStore.SaveAll(ctx, entries)
}

type fixture struct {
	shop   *shop.Shop
	store  *flakyStore
	source *countingSource
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  &flakyStore{InMemorySnapshotStore: repo.NewInMemorySnapshotStore()},
		source: &countingSource{products: seedProducts()},
	}
	f.shop = f.newShop()
	require.NoError(t, f.shop.Load(context.Background()))
	return f
}

// newShop builds a second shop over the same store and source, as a page reload would.
func (f *fixture) newShop() *shop.Shop {
	return shop.New(shop.Options{
		Store:             f.store,
		Source:            f.source,
		Logger:            zap.NewNop(),
		LowStockThreshold: 1,
	})
}

func (f *fixture) persistedCart(t *testing.T) []models.CartLine {
	t.Helper()
	lines, _, err := repo.NewSnapshot[[]models.CartLine](f.store, repo.CartKey).Load(context.Background())
	require.NoError(t, err)
	return lines
}

func (f *fixture) persistedCatalog(t *testing.T) []models.Product {
	t.Helper()
	products, _, err := repo.NewSnapshot[[]models.Product](f.store, repo.CatalogKey).Load(context.Background())
	require.NoError(t, err)
	return products
}

func stockOf(products []models.Product, id int) int {
	for _, p := range products {
		if p.ID == id {
			return p.Stock
		}
	}
	return -1
}
