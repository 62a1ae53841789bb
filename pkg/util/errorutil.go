package util

import (
	"errors"
	"fmt"
)

// Error codes produced by the user service.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeDuplicateEmail   = "DUPLICATE_EMAIL"
	CodeNotFound         = "NOT_FOUND"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

// NewValidationError wraps the accumulated validation messages.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, details)
}

// NewDuplicateEmail signals a uniqueness violation for the given address.
func NewDuplicateEmail(email string) error {
	return NewDomainError(
		CodeDuplicateEmail,
		fmt.Sprintf("user with email %s already exists", email),
		map[string]any{"email": email},
	)
}

// NewNotFound signals an unknown record id on a mutating operation.
func NewNotFound(id int) error {
	return NewDomainError(
		CodeNotFound,
		fmt.Sprintf("user with id %d not found", id),
		map[string]any{"id": id},
	)
}

// HasCode reports whether err is (or wraps) a DomainError with the code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

func IsValidation(err error) bool {
	return HasCode(err, CodeValidationFailed)
}

func IsDuplicateEmail(err error) bool {
	return HasCode(err, CodeDuplicateEmail)
}

func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}
