package entity

import (
	"errors"
	"fmt"
)

// ValidationError means required input is missing or malformed. The user
// fixes the request and resubmits; nothing is retried automatically.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// TransientServiceError is a network or timeout failure on the model
// endpoint. The user action may be retried; the service never retries on
// its own.
type TransientServiceError struct {
	Op  string
	Err error
}

func (e *TransientServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientServiceError) Unwrap() error { return e.Err }

// FatalServiceError is an authentication or permission failure on the model
// endpoint. Retrying without operator intervention cannot help.
type FatalServiceError struct {
	Op  string
	Err error
}

func (e *FatalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalServiceError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsTransient(err error) bool {
	var te *TransientServiceError
	return errors.As(err, &te)
}

func IsFatal(err error) bool {
	var fe *FatalServiceError
	return errors.As(err, &fe)
}
