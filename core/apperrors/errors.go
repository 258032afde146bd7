// Package apperrors provides structured errors for the client, classified
// with sentinel errors via errors.Is().
package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for classification via errors.Is().
var (
	// ErrValidation marks a failed job definition precondition.
	ErrValidation = errors.New("validation error")

	// ErrSubmissionState marks an operation that is invalid given the
	// job's current submission state. Always a usage error, not retried.
	ErrSubmissionState = errors.New("submission state error")

	// ErrSubmissionFailed marks an unsuccessful remote reply to a
	// submission.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrNotFound marks a missing job, log stream or storage object.
	ErrNotFound = errors.New("not found")

	// ErrTimeout marks a tailing operation that exceeded its budget.
	ErrTimeout = errors.New("timeout")
)

// Error carries the context of a failed operation. The raw service reply,
// when one exists, is attached as structured context rather than
// interpolated into the message.
type Error struct {
	Sentinel error       // wrapped sentinel for errors.Is() classification
	Message  string      // human-readable message
	Op       string      // operation that failed, e.g. "batch.Submit"
	Resource string      // for not-found errors, e.g. "log stream"
	Reply    interface{} // raw service reply, when available
	Cause    error       // underlying error
}

// Error returns the human-readable error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the sentinel for errors.Is() classification.
func (e *Error) Unwrap() error {
	return e.Sentinel
}

// Validation creates a validation error for a failed precondition.
func Validation(message string, cause error) error {
	return &Error{
		Sentinel: ErrValidation,
		Message:  message,
		Cause:    cause,
	}
}

// SubmissionState creates a usage error for an operation that is invalid
// in the job's current submission state.
func SubmissionState(op, message string) error {
	return &Error{
		Sentinel: ErrSubmissionState,
		Message:  message,
		Op:       op,
	}
}

// SubmissionFailed creates an error for an unsuccessful submission reply.
func SubmissionFailed(op string, reply interface{}, cause error) error {
	return &Error{
		Sentinel: ErrSubmissionFailed,
		Message:  "job failed to submit",
		Op:       op,
		Reply:    reply,
		Cause:    cause,
	}
}

// NotFound creates a not-found error for a resource.
func NotFound(resource, id string) error {
	return &Error{
		Sentinel: ErrNotFound,
		Message:  fmt.Sprintf("%s %s not found", resource, id),
		Resource: resource,
	}
}

// Timeout creates an error for an operation that exceeded its budget.
func Timeout(op string, budget time.Duration) error {
	return &Error{
		Sentinel: ErrTimeout,
		Message:  fmt.Sprintf("%s exceeded its %s budget", op, budget),
		Op:       op,
	}
}
