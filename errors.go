package qaagent

import (
	"errors"
	"fmt"
)

// RuntimeError represents an operational error that should lead to exit code 2
// Examples include configuration errors, panics, etc.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// OrchestrationError represents a failure to run the suite or produce its
// reports (exit code 1). Individual failing tests are not orchestration
// errors; they are recorded in the report and the run still succeeds.
type OrchestrationError struct {
	Err error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("orchestration error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *OrchestrationError) Unwrap() error {
	return e.Err
}

// NewOrchestrationError creates a new OrchestrationError
func NewOrchestrationError(err error) *OrchestrationError {
	return &OrchestrationError{Err: err}
}

// IsOrchestrationError checks if the error is or wraps an OrchestrationError
func IsOrchestrationError(err error) bool {
	var orchErr *OrchestrationError
	return err != nil && errors.As(err, &orchErr)
}
