package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCartRepository exercises the behaviour every CartRepository must share.
func testCartRepository(t *testing.T, repo CartRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load missing key returns nil", func(t *testing.T) {
		data, err := repo.Load(ctx, "cart:missing")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("Save then load", func(t *testing.T) {
		doc := []byte(`{"items":[{"id":"P001","name":"Cake","price":25.5,"image":"/cake.jpg","quantity":2}]}`)

		require.NoError(t, repo.Save(ctx, "cart:one", doc))

		data, err := repo.Load(ctx, "cart:one")
		require.NoError(t, err)
		assert.JSONEq(t, string(doc), string(data))
	})

	t.Run("Save overwrites", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "cart:two", []byte(`{"items":[]}`)))
		require.NoError(t, repo.Save(ctx, "cart:two", []byte(`{"items":[{"id":"P002","name":"Pie","price":10,"image":"","quantity":1}]}`)))

		data, err := repo.Load(ctx, "cart:two")
		require.NoError(t, err)
		assert.Contains(t, string(data), "P002")
	})

	t.Run("Keys are isolated", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "cart:a", []byte(`{"items":[]}`)))

		data, err := repo.Load(ctx, "cart:b")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "cart:gone", []byte(`{"items":[]}`)))
		require.NoError(t, repo.Delete(ctx, "cart:gone"))

		data, err := repo.Load(ctx, "cart:gone")
		require.NoError(t, err)
		assert.Nil(t, data)

		// Deleting again is not an error
		assert.NoError(t, repo.Delete(ctx, "cart:gone"))
	})
}
