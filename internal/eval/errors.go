package eval

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrLookup           = errors.New("tensor not found in registry")
	ErrUnsupportedShape = errors.New("unsupported tensor shape")
	ErrDuplicate        = errors.New("tensor already registered")
)

// LookupError reports a (name, id) pair missing from the registry.
type LookupError struct {
	Name string
	ID   int
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("tensor %s%d not found in registry", e.Name, e.ID)
}

// Is matches ErrLookup.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// UnsupportedShapeError reports an operand the evaluator cannot handle.
type UnsupportedShapeError struct {
	Stanza  string // Offending stanza text, empty if not applicable
	Details string
}

// Error implements the error interface.
func (e *UnsupportedShapeError) Error() string {
	if e.Stanza != "" {
		return fmt.Sprintf("unsupported shape: %s: %s", e.Stanza, e.Details)
	}
	return "unsupported shape: " + e.Details
}

// Is matches ErrUnsupportedShape.
func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}
