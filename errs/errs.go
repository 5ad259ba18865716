// Package errs defines the sentinel error values shared across the sendprop
// subsystem's packages.
//
// Call sites wrap these with additional context using fmt.Errorf("%w: ...", ...)
// so that callers can still match on the sentinel with errors.Is while getting a
// human-readable message for logs and test failures.
package errs

import "errors"

// Refinement-time errors (spec.md §7, MalformedSendPropDefinitionError cases).
var (
	// ErrUnsizedFloat is returned when a Scaled float definition is missing one or
	// more of bit_count, high, or low.
	ErrUnsizedFloat = errors.New("sendprop: scaled float definition missing bit_count/high/low")
	// ErrUnsizedArray is returned when an Array definition is missing element_count.
	ErrUnsizedArray = errors.New("sendprop: array definition missing element_count")
	// ErrUntypedArray is returned when an Array definition has no bound element
	// (array_property) definition.
	ErrUntypedArray = errors.New("sendprop: array definition missing element type")
	// ErrInvalidPropType is returned when refinement is attempted on a DataTable,
	// Exclude-bearing, or NumSendPropTypes raw definition.
	ErrInvalidPropType = errors.New("sendprop: property type cannot be refined into a parse definition")
)

// Decode-time errors (spec.md §7, ReadError cases surfaced through ParseError).
var (
	// ErrTruncatedRead is returned when the bit stream ends before a field's full
	// width has been read.
	ErrTruncatedRead = errors.New("sendprop: bit stream truncated")
	// ErrOversizedField is returned when a read is asked for a bit width or
	// string length outside the reader's accepted range, or when a
	// null-terminated string runs past the reader's length bound. A field that
	// is merely longer than the remaining stream fails with ErrTruncatedRead.
	ErrOversizedField = errors.New("sendprop: field size exceeds stream bounds")
)

// Definition-reading errors (spec.md §4.2).
var (
	// ErrInvalidSendPropType is returned when a 5-bit prop_type field decodes to a
	// value outside the 0..=7 range recognized by SendPropType (a 5-bit field can
	// encode 0-31, but only the first 8 values are defined).
	ErrInvalidSendPropType = errors.New("sendprop: prop_type out of range")
	// ErrUnrecognizedFlags is returned by RawSendPropDefinition.Read under
	// sendtable.WithStrictFlags when the wire flags field carries a bit outside
	// format.RecognizedFlagsMask.
	ErrUnrecognizedFlags = errors.New("sendprop: flags field carries unrecognized bits")
)
