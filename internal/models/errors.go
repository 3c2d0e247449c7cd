package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrParse ErrorType = iota
	ErrModel
	ErrSearch
	ErrIO
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrParse:
		return "Parse"
	case ErrModel:
		return "Model"
	case ErrSearch:
		return "Search"
	case ErrIO:
		return "IO"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// Status errors reported by model operations
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrMissingField    = errors.New("required field is empty")
	ErrInvalidReboot   = errors.New(`reboot must be "true" or "false"`)
)

// EditError represents an operation that was not performed
type EditError struct {
	Type   ErrorType
	Entity string
	Err    error
}

// Error implements the error interface
func (e *EditError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Entity, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *EditError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an EditError of the given type
func IsType(err error, t ErrorType) bool {
	var editErr *EditError
	return errors.As(err, &editErr) && editErr.Type == t
}

func modelError(entity string, err error) error {
	return &EditError{Type: ErrModel, Entity: entity, Err: err}
}
