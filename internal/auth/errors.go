package auth

import (
	"errors"
	"fmt"
)

// ErrMissingCode is returned when the OAuth callback carries no code parameter.
var ErrMissingCode = errors.New("authorization code not found")

// ErrNoToken is returned when no token has been stored yet.
var ErrNoToken = errors.New("no stored token")

// ExchangeError reports a failed authorization-code exchange with the
// identity provider. It is terminal for the request.
type ExchangeError struct {
	Err error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: %v", e.Err)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// TokenError represents errors related to token persistence
type TokenError struct {
	Operation string
	Message   string
	Err       error
}

func NewTokenError(operation, message string) *TokenError {
	return &TokenError{
		Operation: operation,
		Message:   message,
	}
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("token %s failed: %s", e.Operation, e.Message)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

func (e *TokenError) WithCause(err error) *TokenError {
	e.Err = err
	return e
}
