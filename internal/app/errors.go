package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// SpecifierInvalid indicates the template reference could not be resolved.
	SpecifierInvalid AppErrorType = iota
	// TemplateFetchFailed indicates template fetching failed.
	TemplateFetchFailed
	// PlaceholderParseFailed indicates the placeholder definitions could not be read.
	PlaceholderParseFailed
	// VariableLoadFailed indicates variable loading failed.
	VariableLoadFailed
	// InstallFailed indicates the template could not be instantiated.
	InstallFailed
	// ValidationFailed indicates validation failed.
	ValidationFailed
	// DeleteFailed indicates cache removal failed.
	DeleteFailed
)

// String returns the string representation of the error type.
func (t AppErrorType) String() string {
	switch t {
	case SpecifierInvalid:
		return "SpecifierInvalid"
	case TemplateFetchFailed:
		return "TemplateFetchFailed"
	case PlaceholderParseFailed:
		return "PlaceholderParseFailed"
	case VariableLoadFailed:
		return "VariableLoadFailed"
	case InstallFailed:
		return "InstallFailed"
	case ValidationFailed:
		return "ValidationFailed"
	case DeleteFailed:
		return "DeleteFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewSpecifierError creates a specifier error.
func NewSpecifierError(message string, cause error) *AppError {
	return NewAppError(SpecifierInvalid, message, cause)
}

// NewTemplateFetchError creates a template fetch error.
func NewTemplateFetchError(message string, cause error) *AppError {
	return NewAppError(TemplateFetchFailed, message, cause)
}

// NewPlaceholderParseError creates a placeholder parse error.
func NewPlaceholderParseError(message string, cause error) *AppError {
	return NewAppError(PlaceholderParseFailed, message, cause)
}

// NewVariableLoadError creates a variable load error.
func NewVariableLoadError(message string, cause error) *AppError {
	return NewAppError(VariableLoadFailed, message, cause)
}

// NewInstallError creates an install error.
func NewInstallError(message string, cause error) *AppError {
	return NewAppError(InstallFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewDeleteError creates a delete error.
func NewDeleteError(message string, cause error) *AppError {
	return NewAppError(DeleteFailed, message, cause)
}
