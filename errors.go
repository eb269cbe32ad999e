package jsonc

import "fmt"

// SyntaxError reports malformed input detected by the scanner or parser.
type SyntaxError struct {
	Offset  int
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsonc: syntax error at %d:%d (offset %d): %s", e.Line, e.Column, e.Offset, e.Message)
}

// TypeError reports an *OrThrow accessor invoked on a node of the wrong
// kind, or on a missing property.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return "jsonc: " + e.Message }

// StateError reports an operation attempted on a detached node, a parent
// that cannot hold the edit, or an insert index out of range. Mutations
// take host values rather than nodes, so no node is ever spliced from one
// tree into another.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return "jsonc: " + e.Message }

// ConversionError reports that the host value bridge encountered an
// ill-formed subtree or an unrepresentable number.
type ConversionError struct {
	Message string
}

func (e *ConversionError) Error() string { return "jsonc: " + e.Message }

func newTypeError(format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

func newStateError(format string, args ...any) *StateError {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

func newConversionError(format string, args ...any) *ConversionError {
	return &ConversionError{Message: fmt.Sprintf(format, args...)}
}
