package request

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"marketcrew/internal/catalog"
	"marketcrew/internal/fault"
	"marketcrew/internal/logging"
	"marketcrew/internal/reasoning"
)

// parserRole binds the free-text structuring step.
var parserRole = reasoning.Completion{
	Role:           "Buyer Intent Parser",
	Goal:           "understand the buyer's request and convert it into a structured product request",
	Backstory:      "You are an expert assistant that turns user sentences into backend-ready JSON.",
	ExpectedOutput: "A valid JSON object with keys: ProductID, Quantity, Budget, Instruction.",
}

func parserTask(input string) string {
	return fmt.Sprintf(
		"Parse the following user request into a valid JSON object with keys: "+
			"ProductID, Quantity, Budget, Instruction.\n\n"+
			"Input:\n%s\n\n"+
			"Requirements:\n"+
			"- ProductID must be a string like 'p5'.\n"+
			"- Quantity must be an integer.\n"+
			"- Budget must be a float.\n"+
			"- Instruction is a sentence or phrase expressing preference.\n\n"+
			"Return ONLY the JSON object with these 4 keys.",
		input)
}

// Normalizer resolves raw input into a validated Request.
type Normalizer struct {
	capability reasoning.Capability
	store      catalog.Store
}

// NewNormalizer wires the normalizer to its collaborators.
func NewNormalizer(capability reasoning.Capability, store catalog.Store) *Normalizer {
	return &Normalizer{capability: capability, store: store}
}

// Normalize runs the four gates: structuring, numeric coercion, ProductID
// presence, lookup-and-attach. raw is either a string (free text) or a
// map[string]interface{} (already structured). Each gate failure returns a
// tagged fault; the caller never receives a partially valid Request.
func (n *Normalizer) Normalize(ctx context.Context, raw interface{}) (*Request, error) {
	// Gate 1: structuring
	var fields map[string]interface{}
	switch v := raw.(type) {
	case map[string]interface{}:
		fields = v
	case string:
		m, err := n.structure(ctx, v)
		if err != nil {
			return nil, err
		}
		fields = m
	default:
		return nil, fault.Unexpected("unsupported input", fmt.Errorf("type %T", raw))
	}

	// Gate 2: numeric coercion
	budget, err := coerceFloat(fields, "Budget")
	if err != nil {
		return nil, err
	}
	quantity, err := coerceInt(fields, "Quantity")
	if err != nil {
		return nil, err
	}

	// Gate 3: ProductID presence. Checked on its own because it is a
	// string key, not a coerced numeric.
	rawID, ok := fields["ProductID"]
	if !ok || rawID == nil {
		return nil, fault.MissingKey("ProductID")
	}
	productID, ok := rawID.(string)
	if !ok {
		return nil, fault.Validation("ProductID", fmt.Sprintf("%v", rawID), "must be a string")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, fault.Validation("ProductID", productID, "must not be empty")
	}

	instruction, _ := fields["Instruction"].(string)

	req := &Request{
		ProductID:   strings.TrimSpace(productID),
		Quantity:    quantity,
		Budget:      budget,
		Instruction: instruction,
	}

	// Gate 4: lookup and attach
	details, err := n.store.Lookup(ctx, req.ProductID)
	if err != nil {
		return nil, fault.Unexpected("failed to load product details", err)
	}
	if len(details) == 0 {
		return nil, fault.NotFound(req.ProductID)
	}
	req.ProductDetails = details

	logging.Normalize("request normalized: product=%s quantity=%d budget=%.2f matches=%d",
		req.ProductID, req.Quantity, req.Budget, len(details))
	return req, nil
}

// structure submits free text to the capability in exactly one round trip
// and parses the returned completion as a JSON object.
func (n *Normalizer) structure(ctx context.Context, input string) (map[string]interface{}, error) {
	comp := parserRole
	comp.Task = parserTask(input)

	out, err := n.capability.Complete(ctx, comp)
	if err != nil {
		return nil, fault.Capability("intent parsing", err)
	}

	m, ok := decodeObject(strings.TrimSpace(out))
	if !ok {
		return nil, fault.Parse(out, fmt.Errorf("completion is not a JSON object"))
	}
	return m, nil
}

// coerceFloat pulls a required floating-point field.
func coerceFloat(fields map[string]interface{}, key string) (float64, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, fault.Validation(key, "", "is required")
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fault.Validation(key, x, "must be a number")
		}
		return f, nil
	default:
		return 0, fault.Validation(key, fmt.Sprintf("%v", v), "must be a number")
	}
}

// coerceInt pulls a required integer field. Floats truncate, matching the
// loose typing of JSON input; non-integer strings are rejected.
func coerceInt(fields map[string]interface{}, key string) (int, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, fault.Validation(key, "", "is required")
	}
	switch x := v.(type) {
	case float64:
		return int(x), nil
	case int:
		return x, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fault.Validation(key, x, "must be an integer")
		}
		return i, nil
	default:
		return 0, fault.Validation(key, fmt.Sprintf("%v", v), "must be an integer")
	}
}
