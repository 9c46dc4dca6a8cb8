package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAccessToken signals a 2xx token response without an access_token.
	ErrMissingAccessToken = errors.New("token response missing access_token")

	// ErrEmptyCheckoutURL signals a 2xx checkout response without any usable URL.
	ErrEmptyCheckoutURL = errors.New("provider response missing checkout url")
)

// AuthError signals that a bearer token could not be obtained from the
// payment provider. Detail carries the upstream error description when
// the provider supplied one.
type AuthError struct {
	Detail string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("failed to obtain SumUp token: %s", e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to obtain SumUp token: %v", e.Err)
	}
	return "failed to obtain SumUp token"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates an AuthError with upstream detail.
func NewAuthError(detail string, err error) *AuthError {
	return &AuthError{Detail: detail, Err: err}
}

// UpstreamError signals that the checkout-creation call to the payment
// provider failed after a token was obtained.
type UpstreamError struct {
	Detail string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("failed to create checkout: %s", e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to create checkout: %v", e.Err)
	}
	return "failed to create checkout"
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates an UpstreamError with upstream detail.
func NewUpstreamError(detail string, err error) *UpstreamError {
	return &UpstreamError{Detail: detail, Err: err}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
