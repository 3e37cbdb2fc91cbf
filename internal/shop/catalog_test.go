package shop_test

import (
	"context"
	"math"
	"testing"

	"github.com/rogerio-castellano/storefront/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		term    string
		wantIDs []int
	}{
		{term: "", wantIDs: []int{1, 2, 3}},
		{term: "   ", wantIDs: []int{1, 2, 3}},
		{term: "IBUPROFEN", wantIDs: []int{2}},
		{term: "analgesics", wantIDs: []int{1}},
		{term: "relief", wantIDs: []int{1, 3}},
		{term: "  allergy ", wantIDs: []int{3}},
		{term: "mg", wantIDs: []int{1, 2, 3}},
		{term: "antibiotic", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			products, err := f.shop.Search(tt.term)
			require.NoError(t, err)
			require.NotNil(t, products, "no match must still be an empty list")

			ids := []int{}
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearch_ReturnsCopies(t *testing.T) {
	f := newFixture(t)

	products, err := f.shop.Search("paracetamol")
	require.NoError(t, err)
	products[0].Stock = 1000

	p, err := f.shop.Product(1)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.shop.Product(99)
	assert.ErrorIs(t, err, shop.ErrProductNotFound)
}

func TestBuyNow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.shop.BuyNow(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)
	assert.Equal(t, 1, stockOf(f.persistedCatalog(t), 2))

	p, err = f.shop.BuyNow(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	_, err = f.shop.BuyNow(ctx, 2)
	assert.ErrorIs(t, err, shop.ErrOutOfStock)
	assert.Contains(t, err.Error(), "Ibuprofen 400mg")
	assert.Equal(t, 0, stockOf(f.persistedCatalog(t), 2))
}

func TestBuyNow_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.shop.BuyNow(context.Background(), 42)
	assert.ErrorIs(t, err, shop.ErrProductNotFound)
}

func TestBuyNow_StoreFailureKeepsStock(t *testing.T) {
	f := newFixture(t)
	f.store.fail.Store(true)

	_, err := f.shop.BuyNow(context.Background(), 1)
	assert.ErrorIs(t, err, errStoreDown)

	p, err := f.shop.Product(1)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestRestock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.shop.Restock(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, 10, stockOf(f.persistedCatalog(t), 3))

	p, err = f.shop.Restock(ctx, 3, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	_, err = f.shop.Restock(ctx, 3, -1)
	assert.ErrorIs(t, err, shop.ErrInvalidStockChange)

	_, err = f.shop.Restock(ctx, 99, 1)
	assert.ErrorIs(t, err, shop.ErrProductNotFound)
}

func TestRestock_OverflowIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.shop.Restock(ctx, 1, math.MaxInt)
	assert.ErrorIs(t, err, shop.ErrQuantityOutOfRange)
	assert.Equal(t, 5, stockOf(f.persistedCatalog(t), 1))

	p, err := f.shop.Product(1)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}
