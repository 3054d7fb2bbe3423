package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx,
		Record{ProductID: "P5", SellerID: "s1", Price: 15.0, Description: "fast shipping", Quantity: 10},
		Record{ProductID: "p2", SellerID: "s2", Price: 8.5, Description: "eco packaging", Quantity: 5},
		Record{ProductID: " p5 ", SellerID: "s3", Price: 22.0, Description: "premium", Quantity: 2,
			Attrs: map[string]json.RawMessage{"warranty": json.RawMessage(`"2y"`)}},
	))

	t.Run("case-insensitive trimmed match in insertion order", func(t *testing.T) {
		got, err := store.Lookup(ctx, "  p5")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "s1", got[0].SellerID)
		assert.Equal(t, "s3", got[1].SellerID)
	})

	t.Run("attrs survive the round trip", func(t *testing.T) {
		got, err := store.Lookup(ctx, "p5")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, json.RawMessage(`"2y"`), got[1].Attrs["warranty"])
	})

	t.Run("no match is empty", func(t *testing.T) {
		got, err := store.Lookup(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
