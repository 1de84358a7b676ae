package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is authenticated but not allowed to touch the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates that the resource is in a state that does not allow the operation
// (for example a line item that has already been settled).
var ErrConflict = errors.New("conflict")

// ErrInternal is used for unexpected failures that should surface as a 500.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and a human readable message
// alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ItemsError reports a failure that applies to a specific set of items.
// Handlers surface ItemIDs so the caller knows exactly which items failed.
type ItemsError struct {
	Op      string
	ItemIDs []string
	Err     error
}

// NewItemsError creates a new ItemsError.
func NewItemsError(op string, itemIDs []string, err error) *ItemsError {
	return &ItemsError{Op: op, ItemIDs: itemIDs, Err: err}
}

func (e *ItemsError) Error() string {
	return fmt.Sprintf("%s failed for items [%s]: %v", e.Op, strings.Join(e.ItemIDs, ", "), e.Err)
}

func (e *ItemsError) Unwrap() error {
	return e.Err
}
