package parser

import "fmt"

// ParseErrorType represents the type of parsing error.
type ParseErrorType int

const (
	// ReadFailed indicates the definitions file could not be read.
	ReadFailed ParseErrorType = iota
	// LineTooLong indicates a definitions line exceeded the scanner buffer.
	LineTooLong
)

// String returns the string representation of the error type.
func (t ParseErrorType) String() string {
	switch t {
	case ReadFailed:
		return "ReadFailed"
	case LineTooLong:
		return "LineTooLong"
	default:
		return "Unknown"
	}
}

// ParseError represents a placeholder definitions parsing error.
type ParseError struct {
	// Type is the error type.
	Type ParseErrorType
	// Message is the error message.
	Message string
	// File is the definitions file path, if known.
	File string
	// Line is the line number where the error occurred (1-indexed, 0 if unknown).
	Line int
	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

func newParseError(typ ParseErrorType, message string, cause error) *ParseError {
	return &ParseError{
		Type:    typ,
		Message: message,
		Cause:   cause,
	}
}
