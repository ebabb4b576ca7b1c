package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrAuthenticationRequired will throw if a mutating action has no usable identity
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrNotOwner will throw if the caller neither owns the target nor is the admin
	ErrNotOwner = errors.New("you do not have permission to modify this item")
	// ErrStoreUnavailable will throw if the underlying persistence can not be reached
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrCacheMiss will throw if the key is not cached
	ErrCacheMiss = errors.New("cache miss")
)

// ValidationError reports which field broke which constraint.
type ValidationError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

// NewValidationError returns a *ValidationError for the field.
func NewValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint}
}
