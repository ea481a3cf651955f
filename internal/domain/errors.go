// Package domain contains the core business entities and rules of the
// noice board: posts, groups, users and the weighted "noice" reactions
// they exchange. Everything here is pure and immutable; update operations
// return fresh copies and never touch their receiver.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientNoice is returned when a user tries to spend more
	// noice than their balance holds.
	ErrInsufficientNoice = errors.New("insufficient noice balance")

	// ErrChildLimitExceedsParent is returned when attaching a child group
	// whose noice limit is higher than its parent's.
	ErrChildLimitExceedsParent = errors.New("child group noice limit exceeds parent limit")

	// ErrNoiceNotFound is returned when a reaction target does not exist
	// inside a post's reaction tree.
	ErrNoiceNotFound = errors.New("noice not found")
)

// ValidationError describes a rejected value-object input. Field is the
// machine-readable field name, Message the human-readable reason.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for callers outside the
// package, such as request decoding in the web layer.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
