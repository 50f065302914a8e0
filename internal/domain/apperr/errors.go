package apperr

import "errors"

var ErrValidation = errors.New("validation failed")

// ValidationError is a client input problem; Message is safe to return as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }
