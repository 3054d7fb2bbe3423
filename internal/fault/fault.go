// Package fault defines the tagged error values used at component
// boundaries. Every failure the pipeline can surface to a user is one of
// the kinds below; the user-facing message is a rendering of the tagged
// value, never the primary representation.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a terminal failure.
type Kind string

const (
	// KindParse: free-text input could not be converted to structured fields.
	KindParse Kind = "parse"
	// KindValidation: a required field is missing or not coercible.
	KindValidation Kind = "validation"
	// KindNotFound: no catalog record matches the requested product id.
	KindNotFound Kind = "not_found"
	// KindCapability: the reasoning capability failed mid-pipeline.
	KindCapability Kind = "capability"
	// KindUnexpected: anything not classified above.
	KindUnexpected Kind = "unexpected"
)

// Error carries a failure kind plus enough diagnostics to identify the
// offending field, raw value, or pipeline stage.
type Error struct {
	Kind  Kind
	Msg   string
	Field string // offending field for validation failures
	Raw   string // raw value or raw completion, verbatim
	Stage string // pipeline stage name for capability failures
	Err   error  // wrapped cause, if any
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
	// Parse failures keep the completion verbatim; other kinds already
	// name their raw value in the message.
	if e.Kind == KindParse && e.Raw != "" {
		msg += fmt.Sprintf("\nraw output:\n%s", e.Raw)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindUnexpected when err carries no tag.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnexpected
}

// Parse reports a failed structuring of free-text input. The raw
// completion is kept verbatim for diagnostics.
func Parse(raw string, cause error) *Error {
	return &Error{
		Kind: KindParse,
		Msg:  fmt.Sprintf("failed to parse input: %v", cause),
		Raw:  raw,
		Err:  cause,
	}
}

// Validation reports a missing or un-coercible field. raw is the offending
// value as received.
func Validation(field, raw, reason string) *Error {
	return &Error{
		Kind:  KindValidation,
		Msg:   fmt.Sprintf("invalid input format: %s %s (got %q)", field, reason, raw),
		Field: field,
		Raw:   raw,
	}
}

// MissingKey reports an absent required key. Distinct from Validation so
// the message matches what the user actually omitted.
func MissingKey(field string) *Error {
	return &Error{
		Kind:  KindValidation,
		Msg:   fmt.Sprintf("%q key missing in input data", field),
		Field: field,
	}
}

// NotFound reports an identifier with no catalog matches.
func NotFound(productID string) *Error {
	return &Error{
		Kind:  KindNotFound,
		Msg:   fmt.Sprintf("no product details found for ProductID %q", productID),
		Field: "ProductID",
		Raw:   productID,
	}
}

// Capability reports a reasoning-capability failure at a named stage.
func Capability(stage string, cause error) *Error {
	return &Error{
		Kind:  KindCapability,
		Msg:   fmt.Sprintf("stage %q failed: %v", stage, cause),
		Stage: stage,
		Err:   cause,
	}
}

// Unexpected wraps anything that escaped classification.
func Unexpected(context string, cause error) *Error {
	return &Error{
		Kind: KindUnexpected,
		Msg:  fmt.Sprintf("%s: %v", context, cause),
		Err:  cause,
	}
}
