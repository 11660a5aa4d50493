// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Area rule errors.
	ErrRuleNotFound     = errors.New("area rule not found")
	ErrDuplicateRule    = errors.New("duplicate area rule id")
	ErrMissingRuleField = errors.New("area rule missing required field")
	ErrCatchAllRequired = errors.New("rule set must contain exactly one catch-all rule")
	ErrCatchAllRemoval  = errors.New("catch-all rule cannot be removed")

	// Manifest errors.
	ErrInvalidManifest = errors.New("invalid manifest file")
	ErrNoManifest      = errors.New("no manifest imported yet")

	// Storage errors.
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

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
