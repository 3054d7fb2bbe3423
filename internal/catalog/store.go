package catalog

import (
	"context"
	"strings"
)

// Store is a keyed record store. Lookup returns every record whose product
// id matches under case-insensitive whitespace-trimmed comparison, in
// catalog order. An empty result is not an error; errors indicate
// malformed or unreachable storage.
type Store interface {
	Lookup(ctx context.Context, productID string) ([]Record, error)
	Close() error
}

// NormalizeID canonicalizes a product id for matching.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// matchID reports whether a stored id matches a requested id.
func matchID(stored, requested string) bool {
	return NormalizeID(stored) == NormalizeID(requested)
}

// filterRecords scans records in order, keeping matches.
func filterRecords(records []Record, productID string) []Record {
	var out []Record
	for _, r := range records {
		if matchID(r.ProductID, productID) {
			out = append(out, r)
		}
	}
	return out
}
