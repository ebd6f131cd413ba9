package provider

import (
	"errors"
	"fmt"
)

// ErrMissingSubdirectory is matched by fetch errors raised when the template
// subdirectory is absent from a cloned repository.
var ErrMissingSubdirectory = errors.New("template subdirectory not found in repository")

// ProviderErrorType represents the type of provider error.
type ProviderErrorType int

const (
	// ProviderFetchFailed indicates the template could not be fetched.
	ProviderFetchFailed ProviderErrorType = iota
	// ProviderNotFound indicates the template source does not exist.
	ProviderNotFound
	// ProviderMissingSubdirectory indicates the clone lacks the requested subdirectory.
	ProviderMissingSubdirectory
	// ProviderInvalidSpecifier indicates the specifier cannot be served by the provider.
	ProviderInvalidSpecifier
)

// String returns the string representation of the error type.
func (t ProviderErrorType) String() string {
	switch t {
	case ProviderFetchFailed:
		return "FetchFailed"
	case ProviderNotFound:
		return "NotFound"
	case ProviderMissingSubdirectory:
		return "MissingSubdirectory"
	case ProviderInvalidSpecifier:
		return "InvalidSpecifier"
	default:
		return "Unknown"
	}
}

// ProviderError represents a provider-specific error.
type ProviderError struct {
	// Type is the error type classification.
	Type ProviderErrorType
	// Message is the human-readable error message.
	Message string
	// Provider is the provider name ("git", "local").
	Provider string
	// Specifier describes the template that caused the error.
	Specifier string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s provider error [%s] for '%s': %s (caused by: %v)",
			e.Provider, e.Type.String(), e.Specifier, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s provider error [%s] for '%s': %s",
		e.Provider, e.Type.String(), e.Specifier, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is matches ErrMissingSubdirectory by error type.
func (e *ProviderError) Is(target error) bool {
	return target == ErrMissingSubdirectory && e.Type == ProviderMissingSubdirectory
}

// NewProviderError creates a new ProviderError.
func NewProviderError(typ ProviderErrorType, provider, specifier, message string, cause error) *ProviderError {
	return &ProviderError{
		Type:      typ,
		Message:   message,
		Provider:  provider,
		Specifier: specifier,
		Cause:     cause,
	}
}

// NewFetchError creates a fetch failed error.
func NewFetchError(provider, specifier string, cause error) *ProviderError {
	return NewProviderError(ProviderFetchFailed, provider, specifier, "failed to fetch template", cause)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(provider, specifier string, cause error) *ProviderError {
	return NewProviderError(ProviderNotFound, provider, specifier, "template source not found", cause)
}

// NewMissingSubdirectoryError creates a missing subdirectory error.
func NewMissingSubdirectoryError(provider, specifier, path string) *ProviderError {
	return NewProviderError(ProviderMissingSubdirectory, provider, specifier,
		fmt.Sprintf("subdirectory %s does not exist", path), nil)
}

// NewInvalidSpecifierError creates an invalid specifier error.
func NewInvalidSpecifierError(provider, specifier, message string) *ProviderError {
	return NewProviderError(ProviderInvalidSpecifier, provider, specifier, message, nil)
}
