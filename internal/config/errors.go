package config

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound matches a ConfigError for a missing configuration file.
var ErrConfigNotFound = errors.New("configuration file not found")

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType int

const (
	// ConfigNotFound indicates the configuration file was not found.
	ConfigNotFound ConfigErrorType = iota
	// ConfigInvalid indicates a layer could not be loaded or decoded.
	ConfigInvalid
	// ConfigValidationFailed indicates the merged configuration is invalid.
	ConfigValidationFailed
)

// String returns the string representation of the error type.
func (t ConfigErrorType) String() string {
	switch t {
	case ConfigNotFound:
		return "NotFound"
	case ConfigInvalid:
		return "Invalid"
	case ConfigValidationFailed:
		return "ValidationFailed"
	default:
		return "Unknown"
	}
}

// Layer names the koanf layer a ConfigError came from.
type Layer string

const (
	LayerDefaults Layer = "defaults"
	LayerFile     Layer = "file"
	LayerEnv      Layer = "env"
	LayerDecode   Layer = "decode"
	LayerMerged   Layer = "merged"
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	// Type is the error type.
	Type ConfigErrorType
	// Layer is where in the defaults → file → env chain the error happened.
	Layer Layer
	// Message is the error message.
	Message string
	// File is the configuration file path, empty when no file was involved.
	File string
	// Field is the configuration key that caused the error.
	Field string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	where := string(e.Layer)
	if e.File != "" {
		where = fmt.Sprintf("%s %s", e.Layer, e.File)
	}
	msg := fmt.Sprintf("configuration error (%s)", where)
	if e.Field != "" {
		msg += fmt.Sprintf(" [field: %s]", e.Field)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfigNotFound && e.Type == ConfigNotFound
}

// newLayerError creates a ConfigError for a failure while loading a layer.
func newLayerError(typ ConfigErrorType, layer Layer, file, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    typ,
		Layer:   layer,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a ConfigError for an invalid merged value.
func NewValidationError(field, message string) *ConfigError {
	return &ConfigError{
		Type:    ConfigValidationFailed,
		Layer:   LayerMerged,
		Field:   field,
		Message: message,
	}
}
