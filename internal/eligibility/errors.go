package eligibility

import (
	"errors"
	"fmt"
)

const (
	MsgValidation = "Please provide a more detailed account history (at least 50 characters)."
	MsgInference  = "An unexpected error occurred. Please try again later."
)

// ValidationError is returned before any external call when the submitted
// history is too short. The message is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InferenceError wraps any failure of the inference boundary: transport,
// timeout or a reply that does not match the decision schema. Message is the
// generic user-facing text; Err keeps the cause for logs.
type InferenceError struct {
	Message string
	Err     error
}

func (e *InferenceError) Error() string {
	if e.Err == nil {
		return "eligibility: inference failed"
	}
	return fmt.Sprintf("eligibility: inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsInference reports whether err is (or wraps) an *InferenceError.
func IsInference(err error) bool {
	var ie *InferenceError
	return errors.As(err, &ie)
}
