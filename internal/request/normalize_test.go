package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcrew/internal/catalog"
	"marketcrew/internal/fault"
	"marketcrew/internal/reasoning"
)

// staticStore is an in-memory catalog.Store for tests.
type staticStore struct {
	records []catalog.Record
}

func (s *staticStore) Lookup(_ context.Context, productID string) ([]catalog.Record, error) {
	var out []catalog.Record
	for _, r := range s.records {
		if catalog.NormalizeID(r.ProductID) == catalog.NormalizeID(productID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *staticStore) Close() error { return nil }

func testStore() *staticStore {
	return &staticStore{records: []catalog.Record{
		{ProductID: "p5", SellerID: "s1", Price: 15.0, Description: "fast shipping", Quantity: 10},
		{ProductID: "P5", SellerID: "s3", Price: 22.0, Description: "premium", Quantity: 2},
		{ProductID: "p2", SellerID: "s2", Price: 8.5, Description: "eco packaging", Quantity: 5},
	}}
}

func structured(overrides map[string]interface{}) map[string]interface{} {
	m := map[string]interface{}{
		"ProductID":   "p5",
		"Quantity":    float64(2),
		"Budget":      "19.99",
		"Instruction": "fast shipping",
	}
	for k, v := range overrides {
		if v == nil {
			delete(m, k)
		} else {
			m[k] = v
		}
	}
	return m
}

func TestNormalize_Structured(t *testing.T) {
	stub := &reasoning.Stub{}
	n := NewNormalizer(stub, testStore())

	t.Run("valid input passes all gates", func(t *testing.T) {
		req, err := n.Normalize(context.Background(), structured(nil))
		require.NoError(t, err)

		assert.Equal(t, "p5", req.ProductID)
		assert.Equal(t, 2, req.Quantity)
		assert.Equal(t, 19.99, req.Budget)
		assert.Equal(t, "fast shipping", req.Instruction)
		require.Len(t, req.ProductDetails, 2)
		assert.Equal(t, "s1", req.ProductDetails[0].SellerID)
		assert.Zero(t, stub.CallCount(), "structured input must not call the capability")
	})

	t.Run("product id is trimmed and matched case-insensitively", func(t *testing.T) {
		req, err := n.Normalize(context.Background(), structured(map[string]interface{}{"ProductID": "  P5 "}))
		require.NoError(t, err)
		assert.Equal(t, "P5", req.ProductID)
		assert.Len(t, req.ProductDetails, 2)
	})

	t.Run("missing budget", func(t *testing.T) {
		_, err := n.Normalize(context.Background(), structured(map[string]interface{}{"Budget": nil}))
		require.Error(t, err)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err))
		assert.Contains(t, err.Error(), "Budget")
	})

	t.Run("non-numeric quantity names field and value", func(t *testing.T) {
		_, err := n.Normalize(context.Background(), structured(map[string]interface{}{"Quantity": "many"}))
		require.Error(t, err)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err))
		assert.Contains(t, err.Error(), "Quantity")
		assert.Contains(t, err.Error(), "many")
	})

	t.Run("missing ProductID is its own validation failure", func(t *testing.T) {
		_, err := n.Normalize(context.Background(), structured(map[string]interface{}{"ProductID": nil}))
		require.Error(t, err)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err))
		assert.Contains(t, err.Error(), "ProductID")
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("non-string ProductID names the raw value", func(t *testing.T) {
		_, err := n.Normalize(context.Background(), structured(map[string]interface{}{"ProductID": float64(5)}))
		require.Error(t, err)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err))
		assert.Contains(t, err.Error(), "must be a string")
		assert.Contains(t, err.Error(), "5")
		assert.NotContains(t, err.Error(), "missing")
	})

	t.Run("blank ProductID is rejected", func(t *testing.T) {
		_, err := n.Normalize(context.Background(), structured(map[string]interface{}{"ProductID": "  "}))
		require.Error(t, err)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err))
		assert.Contains(t, err.Error(), "must not be empty")
	})

	t.Run("unknown product id is not found", func(t *testing.T) {
		_, err := n.Normalize(context.Background(), structured(map[string]interface{}{"ProductID": "zzz"}))
		require.Error(t, err)
		assert.Equal(t, fault.KindNotFound, fault.KindOf(err))
		assert.Contains(t, err.Error(), "zzz")
	})
}

func TestNormalize_FreeText(t *testing.T) {
	t.Run("one capability round trip extracts the fields", func(t *testing.T) {
		stub := &reasoning.Stub{Responses: []string{
			`{"ProductID": "p2", "Quantity": 3, "Budget": 10.0, "Instruction": "eco packaging"}`,
		}}
		n := NewNormalizer(stub, testStore())

		req, err := n.Normalize(context.Background(),
			"I need 3 units of product p2 under $10 each, prefer eco packaging")
		require.NoError(t, err)

		assert.Equal(t, "p2", req.ProductID)
		assert.Equal(t, 3, req.Quantity)
		assert.Equal(t, 10.0, req.Budget)
		assert.Equal(t, "eco packaging", req.Instruction)

		calls := stub.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "Buyer Intent Parser", calls[0].Role)
		assert.Contains(t, calls[0].Task, "prefer eco packaging")
	})

	t.Run("JSON wrapped in prose is recovered", func(t *testing.T) {
		stub := &reasoning.Stub{Responses: []string{
			"Here is the parsed request:\n```json\n{\"ProductID\": \"p5\", \"Quantity\": 1, \"Budget\": 20}\n```\nDone.",
		}}
		n := NewNormalizer(stub, testStore())

		req, err := n.Normalize(context.Background(), "one p5 under twenty dollars")
		require.NoError(t, err)
		assert.Equal(t, "p5", req.ProductID)
	})

	t.Run("unparseable completion keeps the raw output", func(t *testing.T) {
		stub := &reasoning.Stub{Responses: []string{"sorry, I cannot help with that"}}
		n := NewNormalizer(stub, testStore())

		_, err := n.Normalize(context.Background(), "???")
		require.Error(t, err)
		assert.Equal(t, fault.KindParse, fault.KindOf(err))
		assert.Contains(t, err.Error(), "sorry, I cannot help with that")
	})

	t.Run("capability failure is a capability fault, not a parse failure", func(t *testing.T) {
		stub := &reasoning.Stub{Err: assert.AnError}
		n := NewNormalizer(stub, testStore())

		_, err := n.Normalize(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, fault.KindCapability, fault.KindOf(err))
		assert.Contains(t, err.Error(), "intent parsing")
	})
}

func TestCoercion(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]interface{}
		wantErr bool
	}{
		{"json number budget", map[string]interface{}{"Budget": 5.0, "Quantity": float64(1), "ProductID": "p2"}, false},
		{"string float budget", map[string]interface{}{"Budget": "5.5", "Quantity": float64(1), "ProductID": "p2"}, false},
		{"string int quantity", map[string]interface{}{"Budget": 5.0, "Quantity": "4", "ProductID": "p2"}, false},
		{"float quantity truncates", map[string]interface{}{"Budget": 5.0, "Quantity": 2.9, "ProductID": "p2"}, false},
		{"non-numeric budget", map[string]interface{}{"Budget": "cheap", "Quantity": float64(1), "ProductID": "p2"}, true},
		{"fractional string quantity", map[string]interface{}{"Budget": 5.0, "Quantity": "2.5", "ProductID": "p2"}, true},
		{"boolean quantity", map[string]interface{}{"Budget": 5.0, "Quantity": true, "ProductID": "p2"}, true},
	}

	n := NewNormalizer(&reasoning.Stub{}, testStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(context.Background(), tt.fields)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, fault.KindValidation, fault.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
