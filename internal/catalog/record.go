// Package catalog provides seller-offer records and the keyed stores that
// back product lookup. Matching is exact on product id, case-insensitive
// and whitespace-trimmed, and preserves catalog order.
package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one seller offer. Fields beyond the known five are kept
// verbatim in Attrs and round-trip through JSON, so stage prompts see
// whatever the catalog carries.
type Record struct {
	ProductID   string
	SellerID    string
	Price       float64
	Description string
	Quantity    int

	// Attrs holds catalog fields this layer does not interpret.
	Attrs map[string]json.RawMessage
}

// UnmarshalJSON decodes the known fields and stashes everything else in
// Attrs. Price and Quantity accept both JSON numbers and numeric strings,
// since flat-file catalogs are loose about types.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string) (json.RawMessage, bool) {
		v, ok := raw[key]
		if ok {
			delete(raw, key)
		}
		return v, ok
	}

	if v, ok := take("product_id"); ok {
		if err := json.Unmarshal(v, &r.ProductID); err != nil {
			return fmt.Errorf("product_id: %w", err)
		}
	}
	if v, ok := take("seller_id"); ok {
		if err := json.Unmarshal(v, &r.SellerID); err != nil {
			return fmt.Errorf("seller_id: %w", err)
		}
	}
	if v, ok := take("description"); ok {
		if err := json.Unmarshal(v, &r.Description); err != nil {
			return fmt.Errorf("description: %w", err)
		}
	}
	if v, ok := take("price"); ok {
		f, err := jsonFloat(v)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		r.Price = f
	}
	if v, ok := take("quantity"); ok {
		n, err := jsonInt(v)
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		r.Quantity = n
	}

	if len(raw) > 0 {
		r.Attrs = raw
	}
	return nil
}

// MarshalJSON emits the known fields plus any passthrough attrs.
func (r Record) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"product_id":  r.ProductID,
		"seller_id":   r.SellerID,
		"price":       r.Price,
		"description": r.Description,
		"quantity":    r.Quantity,
	}
	for k, v := range r.Attrs {
		out[k] = v
	}
	return json.Marshal(out)
}

func jsonFloat(v json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	return 0, fmt.Errorf("not a number: %s", string(v))
}

func jsonInt(v json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return int(f), nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strconv.Atoi(strings.TrimSpace(s))
	}
	return 0, fmt.Errorf("not an integer: %s", string(v))
}
