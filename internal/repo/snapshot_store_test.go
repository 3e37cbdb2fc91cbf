package repo_test

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseSnapshotStore runs the behaviour every SnapshotStore implementation must share.
func exerciseSnapshotStore(t *testing.T, store repo.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		data, ok, err := store.Load(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("save overwrites wholesale", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "cart", []byte(`[{"product_id":1,"quantity":1}]`)))
		require.NoError(t, store.Save(ctx, "cart", []byte(`[]`)))

		data, ok, err := store.Load(ctx, "cart")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("save all", func(t *testing.T) {
		err := store.SaveAll(ctx, map[string][]byte{
			"catalog": []byte(`[{"id":1}]`),
			"cart":    []byte(`[{"product_id":1,"quantity":3}]`),
		})
		require.NoError(t, err)

		catalog, ok, err := store.Load(ctx, "catalog")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[{"id":1}]`, string(catalog))

		cart, ok, err := store.Load(ctx, "cart")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[{"product_id":1,"quantity":3}]`, string(cart))
	})

	t.Run("empty key", func(t *testing.T) {
		_, _, err := store.Load(ctx, "")
		assert.ErrorIs(t, err, repo.ErrEmptyKey)
		assert.ErrorIs(t, store.Save(ctx, "", []byte(`[]`)), repo.ErrEmptyKey)
		assert.ErrorIs(t, store.SaveAll(ctx, map[string][]byte{"": []byte(`[]`)}), repo.ErrEmptyKey)
	})

	t.Run("typed snapshot", func(t *testing.T) {
		snap := repo.NewSnapshot[[]models.Product](store, "typed-catalog")

		_, ok, err := snap.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		products := []models.Product{{ID: 7, Name: "Dipirona", Price: decimal.RequireFromString("12.90"), Stock: 4}}
		require.NoError(t, snap.Save(ctx, products))

		loaded, ok, err := snap.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, loaded, 1)
		assert.Equal(t, "Dipirona", loaded[0].Name)
		assert.True(t, loaded[0].Price.Equal(decimal.RequireFromString("12.9")))
		assert.Equal(t, 4, loaded[0].Stock)
	})
}

func TestInMemorySnapshotStore(t *testing.T) {
	store := repo.NewInMemorySnapshotStore()
	exerciseSnapshotStore(t, store)
}

func TestInMemorySnapshotStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := repo.NewInMemorySnapshotStore()
	require.NoError(t, store.Save(ctx, "cart", []byte(`[]`)))

	data, _, err := store.Load(ctx, "cart")
	require.NoError(t, err)
	data[0] = '{'

	again, _, err := store.Load(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(again))
}

func TestSnapshot_DecodeError(t *testing.T) {
	ctx := context.Background()
	store := repo.NewInMemorySnapshotStore()
	require.NoError(t, store.Save(ctx, "cart", []byte(`not json`)))

	_, ok, err := repo.NewSnapshot[[]models.CartLine](store, "cart").Load(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPrefixedKey(t *testing.T) {
	assert.Equal(t, "cart", repo.PrefixedKey("", "cart"))
	assert.Equal(t, "pharmacy:cart", repo.PrefixedKey("pharmacy", "cart"))
}
