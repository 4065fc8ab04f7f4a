// Package common provides shared error types used across the application.
package common

import (
	"errors"
	"fmt"
)

// ErrDuplicateEntry is returned when a record's identifier already exists in
// the store.
var ErrDuplicateEntry = errors.New("duplicate entry")

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
