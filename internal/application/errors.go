package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrCannotShuffle    = errors.New("cannot shuffle")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ShuffleError represents a request to order sections that cannot be met
type ShuffleError struct {
	Reason string
	Err    error
}

func (e *ShuffleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot shuffle: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot shuffle: %s", e.Reason)
}

func (e *ShuffleError) Unwrap() error { return e.Err }

func (e *ShuffleError) Is(target error) bool {
	return target == ErrCannotShuffle
}

// NotFoundError names the missing entity
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
