package service

import (
	"errors"
	"fmt"
)

var (
	ErrInternal                    = errors.New("internal server error")
	ErrNotFound                    = errors.New("not found")
	ErrInvalidOperation            = errors.New("invalid operation")
	ErrSelfFollow                  = fmt.Errorf("%w: users cannot follow themselves", ErrInvalidOperation)
	ErrUnauthorized                = errors.New("user is not authorized")
	ErrForbidden                   = errors.New("no access")
	ErrAlreadyExists               = errors.New("already exists")
	ErrValidation                  = errors.New("validation failed")
	ErrMediaUnavailable            = errors.New("media storage is not configured")
	ErrFileMustBeImage             = errors.New("file must be an image")
	ErrFileMustHaveAValidExtension = errors.New("file must have a valid extension")
	ErrFailedToUploadPostImage     = errors.New("failed to upload post image")
)

// ValidationError names the input field that was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}
