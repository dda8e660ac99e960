package srep

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrSyntax     = errors.New("srep syntax error")
	ErrValidation = errors.New("srep validation failed")
)

// SyntaxError reports text that could not be parsed as a stanza, srep or equation.
type SyntaxError struct {
	Input   string // Offending text
	Pos     int    // Byte offset into Input, -1 if not applicable
	Details string // What was expected
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("syntax error in %q at %d: %s", e.Input, e.Pos, e.Details)
	}
	return fmt.Sprintf("syntax error in %q: %s", e.Input, e.Details)
}

// Is matches ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// ValidationError reports a structurally invalid srep or equation.
type ValidationError struct {
	Type    string // Type of error (e.g., "summed_count", "free_mismatch")
	Tag     int    // Tag involved, -1 if none
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tag >= 0 {
		return fmt.Sprintf("%s: tag %d: %s", e.Type, e.Tag, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func syntaxErrorf(input string, pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Input: input, Pos: pos, Details: fmt.Sprintf(format, args...)}
}
