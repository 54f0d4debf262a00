package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing entities.
var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrFeePeriodNotFound = errors.New("fee period not found for the given term and academic year")
	ErrUserNotFound      = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown username and a wrong
	// password so the response does not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// IsNotFoundError reports whether err is one of the missing-entity kinds.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrFeePeriodNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// ConflictError signals a uniqueness violation (username, reg_no).
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

func NewConflictError(resource, field, value string) *ConflictError {
	return &ConflictError{Resource: resource, Field: field, Value: value}
}

func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// InvalidAmountError signals a non-positive payment or a negative
// expected fee.
type InvalidAmountError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid %s %.2f: %s", e.Field, e.Value, e.Reason)
}

func NewInvalidAmountError(field string, value float64, reason string) *InvalidAmountError {
	return &InvalidAmountError{Field: field, Value: value, Reason: reason}
}

func IsInvalidAmountError(err error) bool {
	var ie *InvalidAmountError
	return errors.As(err, &ie)
}

// PermissionError signals a role or identity check failure.
type PermissionError struct {
	Username string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %q may not %s: %s", e.Username, e.Action, e.Reason)
}

func NewPermissionError(username, action, reason string) *PermissionError {
	return &PermissionError{Username: username, Action: action, Reason: reason}
}

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// ValidationError signals malformed input that passed transport decoding
// but failed a business rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
