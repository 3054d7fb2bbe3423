package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcrew/internal/catalog"
	"marketcrew/internal/config"
)

func TestParseInput(t *testing.T) {
	t.Run("JSON object becomes a mapping", func(t *testing.T) {
		got := parseInput(`  {"ProductID": "p5", "Quantity": 2}  `)
		m, ok := got.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "p5", m["ProductID"])
	})

	t.Run("free text stays a string", func(t *testing.T) {
		got := parseInput("I need 3 units of p2")
		assert.Equal(t, "I need 3 units of p2", got)
	})

	t.Run("malformed JSON falls back to free text", func(t *testing.T) {
		got := parseInput(`{"ProductID": `)
		_, ok := got.(string)
		assert.True(t, ok)
	})
}

func TestOpenStore(t *testing.T) {
	t.Run("json backend", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cat.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"product_id":"p1","seller_id":"s1","price":1,"quantity":1,"description":"d"}]`), 0o644))

		store, err := openStore(config.CatalogConfig{Backend: "json", Path: path})
		require.NoError(t, err)
		defer store.Close()
		_, ok := store.(*catalog.JSONStore)
		assert.True(t, ok)
	})

	t.Run("sqlite backend", func(t *testing.T) {
		store, err := openStore(config.CatalogConfig{Backend: "sqlite", Path: ":memory:"})
		require.NoError(t, err)
		defer store.Close()
		_, ok := store.(*catalog.SQLiteStore)
		assert.True(t, ok)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := openStore(config.CatalogConfig{Backend: "dynamo"})
		assert.Error(t, err)
	})
}
