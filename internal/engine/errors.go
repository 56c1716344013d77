package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents an error that aborted a run.
//
// Runtime errors include:
//   - DUT fault: the model's Eval reported corruption
//   - Trace write: the trace sink rejected a frame or failed to close
//
// Assertion failures are never runtime errors; they are results.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Tick is the logical time at which the error occurred.
	Tick uint64

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeDUTFault indicates the model failed to evaluate.
	ErrCodeDUTFault RuntimeErrorCode = "DUT_FAULT"

	// ErrCodeTraceWrite indicates the trace sink failed.
	ErrCodeTraceWrite RuntimeErrorCode = "TRACE_WRITE"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s at tick %d: %v", e.Code, e.Message, e.Tick, e.Err)
	}
	return fmt.Sprintf("%s: %s at tick %d", e.Code, e.Message, e.Tick)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// IsDUTFault returns true if the error is a model evaluation failure.
// Uses errors.As to handle wrapped errors.
func IsDUTFault(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeDUTFault
	}
	return false
}

// IsTraceError returns true if the error came from the trace sink.
func IsTraceError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeTraceWrite
	}
	return false
}

// NewDUTFault creates a RuntimeError for a failed evaluation.
func NewDUTFault(tick uint64, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeDUTFault,
		Message: "model evaluation failed",
		Tick:    tick,
		Err:     err,
	}
}

// NewTraceError creates a RuntimeError for a sink failure.
func NewTraceError(tick uint64, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeTraceWrite,
		Message: "trace sink failed",
		Tick:    tick,
		Err:     err,
	}
}
