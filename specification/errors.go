package specification

import "errors"

// Sentinel errors for candidate data-contract violations and malformed
// specification trees. Callers match them with errors.Is; the wrapped
// message carries the field or node context.
var (
	// ErrMissingField indicates a required candidate field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrMalformedValue indicates a candidate field is present but cannot
	// be interpreted as the expected type.
	ErrMalformedValue = errors.New("malformed value")

	// ErrInvalidComposition indicates a composite specification that
	// cannot be evaluated, such as an And or Or with no children.
	ErrInvalidComposition = errors.New("invalid composition")
)
