package specifier

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpecifier is matched by errors for malformed references.
	ErrInvalidSpecifier = errors.New("invalid template specifier")
	// ErrUnsupported is matched by errors for reference forms that are
	// recognized but not implemented yet (gh:).
	ErrUnsupported = errors.New("unsupported template specifier")
)

// SpecifierErrorType classifies resolver failures.
type SpecifierErrorType int

const (
	// SpecifierInvalid indicates a malformed reference.
	SpecifierInvalid SpecifierErrorType = iota
	// SpecifierUnsupported indicates a reference form that is not supported.
	SpecifierUnsupported
)

// String returns the string representation of the error type.
func (t SpecifierErrorType) String() string {
	switch t {
	case SpecifierInvalid:
		return "Invalid"
	case SpecifierUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// SpecifierError is returned by Resolve.
type SpecifierError struct {
	Type      SpecifierErrorType
	Reference string
	Message   string
}

// Error implements the error interface.
func (e *SpecifierError) Error() string {
	return fmt.Sprintf("template specifier '%s' [%s]: %s", e.Reference, e.Type, e.Message)
}

// Is lets errors.Is match the package sentinels by type.
func (e *SpecifierError) Is(target error) bool {
	switch target {
	case ErrInvalidSpecifier:
		return e.Type == SpecifierInvalid
	case ErrUnsupported:
		return e.Type == SpecifierUnsupported
	}
	return false
}

func newInvalidError(reference, message string) *SpecifierError {
	return &SpecifierError{Type: SpecifierInvalid, Reference: reference, Message: message}
}

func newUnsupportedError(reference, message string) *SpecifierError {
	return &SpecifierError{Type: SpecifierUnsupported, Reference: reference, Message: message}
}
