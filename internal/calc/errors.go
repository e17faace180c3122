package calc

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrShapeMismatch is wrapped by every ShapeError. Op builders and
	// layers panic with a *ShapeError when their operands violate the
	// documented shape rules; this is treated as a programmer error, the
	// same way malformed tensor shapes are elsewhere in the module.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidConfiguration covers structurally bad setups such as an
	// empty layer list or a negative regularization coefficient.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNumericDomain marks operations evaluated outside their domain,
	// e.g. the logarithm of a non-positive value. The op builders
	// themselves do not guard for this and silently produce NaN; the
	// sentinel exists for callers that want to classify such failures.
	ErrNumericDomain = errors.New("numeric domain")
)

// ShapeError reports which operation was handed incompatible shapes.
type ShapeError struct {
	Op     string // operation name, e.g. "matmul"
	Detail string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrShapeMismatch, e.Detail)
}

// Unwrap lets errors.Is(err, ErrShapeMismatch) succeed.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
