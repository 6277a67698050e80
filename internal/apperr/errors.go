package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NotFoundError reports a lookup miss. It is never converted into an empty success.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StoreUnavailableError reports that the catalog store could not be reached or timed out.
// Callers may retry; nothing below the caller does.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	if e.Err != nil {
		return "store unavailable during " + e.Op + ": " + e.Err.Error()
	}
	return "store unavailable during " + e.Op
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// Retryable marks the error as safe to retry.
func (e *StoreUnavailableError) Retryable() bool {
	return true
}

func NewStoreUnavailable(op string, err error) *StoreUnavailableError {
	return &StoreUnavailableError{Op: op, Err: err}
}
