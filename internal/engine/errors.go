// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrEmptyExtraction = errors.New("no activities found in webpage")
	ErrNoStore         = errors.New("no store configured")
	ErrNoFetcher       = errors.New("no fetcher configured")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeFetch           ErrorCode = "FETCH_ERROR"
	ErrCodeEmptyExtraction ErrorCode = "EMPTY_EXTRACTION"
	ErrCodePersistence     ErrorCode = "PERSISTENCE_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// EngineError wraps a failed run stage with the message recorded in the audit log
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// AuditMessage is the text stored in the run history for this failure
func (e *EngineError) AuditMessage() string {
	switch {
	case e.Underlying == nil:
		return e.Message
	case e.Code == ErrCodeEmptyExtraction:
		return "No activities found in webpage"
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

// CodeOf returns the ErrorCode carried by err, or "" when err is not an EngineError
func CodeOf(err error) ErrorCode {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
