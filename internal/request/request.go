// Package request turns raw buyer input, free text or a structured
// mapping, into a validated purchase request with catalog matches
// attached. Normalization runs four sequential gates; any gate failure is
// terminal and the pipeline never sees a partially valid request.
package request

import (
	"encoding/json"

	"marketcrew/internal/catalog"
)

// Request is the validated unit of work flowing through the pipeline.
// It is mutated only during normalization; the pipeline treats it as
// immutable context.
type Request struct {
	ProductID   string
	Quantity    int
	Budget      float64 // per-unit budget
	Instruction string  // buyer preference, passed through verbatim

	// ProductDetails holds the catalog matches, in catalog order.
	// Non-empty by construction.
	ProductDetails []catalog.Record
}

// DetailsJSON renders the attached records for embedding into a stage
// prompt. Records marshal with their passthrough attrs included.
func (r *Request) DetailsJSON() string {
	b, err := json.Marshal(r.ProductDetails)
	if err != nil {
		// Record marshaling is total over what Unmarshal accepts.
		return "[]"
	}
	return string(b)
}
